package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketService coordinates ticket workflows. Every mutating operation
// re-checks the access policy here; route middleware is the first line,
// not the only one.
type TicketService struct {
	tickets    repository.TicketRepository
	messages   repository.MessageRepository
	categories repository.CategoryRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	MessageRepo  repository.MessageRepository
	CategoryRepo repository.CategoryRepository
	Dispatcher   events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		messages:   deps.MessageRepo,
		categories: deps.CategoryRepo,
		dispatcher: deps.Dispatcher,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title        string
	Category     string
	Description  string
	ComputerName string
	Priority     domain.TicketPriority
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	Statuses   []domain.TicketStatus
	Priorities []domain.TicketPriority
	Category   *string
	SearchTerm *string
	OwnerID    *int64
	Limit      int
	Offset     int
}

// CreateTicket creates a ticket owned by the caller. The category must
// name an existing Category; the stored value is a snapshot of that
// name, not a reference. Computer name falls back to the caller's
// profile when omitted.
func (s *TicketService) CreateTicket(ctx context.Context, caller *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	if !auth.Can(caller.Role, auth.ActionCreateTicket) {
		return nil, apperrors.NewForbidden("role may not create tickets")
	}

	title := strings.TrimSpace(input.Title)
	category := strings.TrimSpace(input.Category)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if category == "" {
		return nil, apperrors.NewValidationError("category required", nil)
	}

	if _, err := s.categories.GetByName(ctx, category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": category})
		}
		return nil, err
	}

	computerName := strings.TrimSpace(input.ComputerName)
	if computerName == "" {
		computerName = caller.ComputerName
	}
	if computerName == "" {
		return nil, apperrors.NewValidationError("computer name required", nil)
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": priority})
	}

	ticket := &domain.Ticket{
		OwnerID:      caller.ID,
		Title:        title,
		Category:     category,
		Status:       domain.TicketStatusOpen,
		Priority:     priority,
		Description:  strings.TrimSpace(input.Description),
		ComputerName: computerName,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    actorFor(caller),
		Payload: events.TicketCreatedPayload{
			Category: ticket.Category,
			Priority: ticket.Priority,
			Title:    ticket.Title,
		},
	})
	return ticket, nil
}

// ListTickets returns tickets visible to the caller, newest first.
// End-users only ever see their own tickets; staff see everything and
// may scope to a specific owner.
func (s *TicketService) ListTickets(ctx context.Context, caller *domain.User, filter TicketListFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{
		Statuses:   filter.Statuses,
		Priorities: filter.Priorities,
		Category:   filter.Category,
		SearchTerm: filter.SearchTerm,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}
	if auth.Can(caller.Role, auth.ActionViewAllTickets) {
		repoFilter.OwnerID = filter.OwnerID
	} else {
		ownerID := caller.ID
		repoFilter.OwnerID = &ownerID
	}
	return s.tickets.ListWithFilter(ctx, repoFilter)
}

// GetTicket fetches a ticket with its ordered message thread, ensuring
// the caller is the owner or staff.
func (s *TicketService) GetTicket(ctx context.Context, caller *domain.User, ticketID int64) (*domain.Ticket, []domain.Message, error) {
	ticket, err := s.getAccessible(ctx, caller, ticketID)
	if err != nil {
		return nil, nil, err
	}
	msgs, err := s.messages.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, nil, err
	}
	return ticket, msgs, nil
}

// UpdateStatus changes ticket status; support/admin only.
func (s *TicketService) UpdateStatus(ctx context.Context, caller *domain.User, ticketID int64, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if !auth.Can(caller.Role, auth.ActionUpdateTicketStatus) {
		return nil, apperrors.NewForbidden("role may not change ticket status")
	}
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}
	ticket, err := s.getByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	oldStatus := ticket.Status
	if oldStatus == newStatus {
		return ticket, nil
	}
	ticket.Status = newStatus
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Actor:    actorFor(caller),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return ticket, nil
}

// UpdatePriority changes ticket priority; support/admin only.
func (s *TicketService) UpdatePriority(ctx context.Context, caller *domain.User, ticketID int64, newPriority domain.TicketPriority) (*domain.Ticket, error) {
	if !auth.Can(caller.Role, auth.ActionUpdateTicketPriority) {
		return nil, apperrors.NewForbidden("role may not change ticket priority")
	}
	if !newPriority.Valid() {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": newPriority})
	}
	ticket, err := s.getByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	oldPriority := ticket.Priority
	if oldPriority == newPriority {
		return ticket, nil
	}
	ticket.Priority = newPriority
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketPriorityChanged,
		TicketID: ticket.ID,
		Actor:    actorFor(caller),
		Payload: events.TicketPriorityChangedPayload{
			OldPriority: oldPriority,
			NewPriority: newPriority,
		},
	})
	return ticket, nil
}

// DeleteTicket removes a ticket and its thread; admin only.
func (s *TicketService) DeleteTicket(ctx context.Context, caller *domain.User, ticketID int64) error {
	if !auth.Can(caller.Role, auth.ActionDeleteTicket) {
		return apperrors.NewForbidden("role may not delete tickets")
	}
	ticket, err := s.getByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if err := s.tickets.Delete(ctx, ticket.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", nil)
		}
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticket.ID,
		Actor:    actorFor(caller),
		Payload:  events.TicketDeletedPayload{Title: ticket.Title},
	})
	return nil
}

// AddMessage appends a chat message to the ticket thread. Only the
// ticket owner or staff may post; empty or whitespace-only text is
// rejected and the thread stays unchanged.
func (s *TicketService) AddMessage(ctx context.Context, caller *domain.User, ticketID int64, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("message body required", nil)
	}
	ticket, err := s.getAccessible(ctx, caller, ticketID)
	if err != nil {
		return nil, err
	}

	authorName := caller.FullName
	if authorName == "" {
		authorName = caller.Username
	}
	message := &domain.Message{
		TicketID:    ticket.ID,
		AuthorID:    caller.ID,
		AuthorName:  authorName,
		AuthorRole:  caller.Role,
		SupportSide: caller.Role.IsStaff(),
		Body:        body,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketMessageAdded,
		TicketID: ticket.ID,
		Actor:    actorFor(caller),
		Payload: events.TicketMessageAddedPayload{
			MessageID:   message.ID,
			AuthorRole:  message.AuthorRole,
			SupportSide: message.SupportSide,
			BodyPreview: stringPreview(message.Body, 120),
		},
	})
	return message, nil
}

func (s *TicketService) getByID(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) getAccessible(ctx context.Context, caller *domain.User, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.getByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.OwnerID != caller.ID && !auth.Can(caller.Role, auth.ActionViewAllTickets) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorFor(user *domain.User) events.Actor {
	return events.Actor{UserID: user.ID, Role: user.Role}
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
