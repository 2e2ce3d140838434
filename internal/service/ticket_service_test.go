package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

type ticketFixture struct {
	tickets    *fakeTicketRepo
	messages   *fakeMessageRepo
	categories *fakeCategoryRepo
	users      *fakeUserRepo
	svc        *TicketService
	owner      *domain.User
	stranger   *domain.User
	support    *domain.User
	admin      *domain.User
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()
	f := &ticketFixture{
		tickets:    newFakeTicketRepo(),
		messages:   newFakeMessageRepo(),
		categories: newFakeCategoryRepo(),
		users:      newFakeUserRepo(),
	}
	f.svc = NewTicketService(TicketDependencies{
		TicketRepo:   f.tickets,
		MessageRepo:  f.messages,
		CategoryRepo: f.categories,
		Dispatcher:   events.NewInMemoryDispatcher(),
	})

	require.NoError(t, f.categories.Create(context.Background(), &domain.Category{Name: "VPN"}))
	require.NoError(t, f.categories.Create(context.Background(), &domain.Category{Name: "Printer"}))

	f.owner = seedUser(t, f.users, domain.User{Username: "owner", FullName: "Петров П.П.", ComputerName: "U-1", Role: domain.RoleUser})
	f.stranger = seedUser(t, f.users, domain.User{Username: "stranger", ComputerName: "U-2", Role: domain.RoleUser})
	f.support = seedUser(t, f.users, domain.User{Username: "agent", Role: domain.RoleSupport})
	f.admin = seedUser(t, f.users, domain.User{Username: "boss", Role: domain.RoleAdmin})
	return f
}

func (f *ticketFixture) createTicket(t *testing.T, caller *domain.User, title string) *domain.Ticket {
	t.Helper()
	ticket, err := f.svc.CreateTicket(context.Background(), caller, TicketCreateInput{
		Title:    title,
		Category: "VPN",
	})
	require.NoError(t, err)
	return ticket
}

func TestCreateTicketDefaults(t *testing.T) {
	f := newTicketFixture(t)

	ticket, err := f.svc.CreateTicket(context.Background(), f.owner, TicketCreateInput{
		Title:        "VPN broken",
		Category:     "VPN",
		ComputerName: "U-1",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, f.owner.ID, ticket.OwnerID)
	assert.Equal(t, "VPN", ticket.Category)
}

func TestCreateTicketComputerNameFromProfile(t *testing.T) {
	f := newTicketFixture(t)

	ticket := f.createTicket(t, f.owner, "no computer name given")
	assert.Equal(t, "U-1", ticket.ComputerName)
}

func TestCreateTicketValidation(t *testing.T) {
	f := newTicketFixture(t)

	_, err := f.svc.CreateTicket(context.Background(), f.owner, TicketCreateInput{Category: "VPN"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = f.svc.CreateTicket(context.Background(), f.owner, TicketCreateInput{Title: "x", Category: "Nope"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestListTicketsNewestFirstAndScoped(t *testing.T) {
	f := newTicketFixture(t)

	first := f.createTicket(t, f.owner, "first")
	second := f.createTicket(t, f.owner, "second")
	other := f.createTicket(t, f.stranger, "other user's")

	own, err := f.svc.ListTickets(context.Background(), f.owner, TicketListFilter{})
	require.NoError(t, err)
	require.Len(t, own, 2, "end-user sees only own tickets")
	assert.Equal(t, second.ID, own[0].ID, "newest first")
	assert.Equal(t, first.ID, own[1].ID)

	all, err := f.svc.ListTickets(context.Background(), f.support, TicketListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	scoped, err := f.svc.ListTickets(context.Background(), f.support, TicketListFilter{OwnerID: &f.stranger.ID})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, other.ID, scoped[0].ID)
}

func TestGetTicketOwnershipBarrier(t *testing.T) {
	f := newTicketFixture(t)
	ticket := f.createTicket(t, f.owner, "mine")

	_, _, err := f.svc.GetTicket(context.Background(), f.stranger, ticket.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	got, msgs, err := f.svc.GetTicket(context.Background(), f.owner, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, got.ID)
	assert.Empty(t, msgs)

	_, _, err = f.svc.GetTicket(context.Background(), f.support, ticket.ID)
	assert.NoError(t, err, "staff may view any ticket")
}

func TestStatusAndPriorityPolicy(t *testing.T) {
	f := newTicketFixture(t)
	ticket := f.createTicket(t, f.owner, "escalate me")

	_, err := f.svc.UpdateStatus(context.Background(), f.owner, ticket.ID, domain.TicketStatusClosed)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	updated, err := f.svc.UpdateStatus(context.Background(), f.support, ticket.ID, domain.TicketStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, updated.Status)

	_, err = f.svc.UpdatePriority(context.Background(), f.owner, ticket.ID, domain.TicketPriorityHigh)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	updated, err = f.svc.UpdatePriority(context.Background(), f.admin, ticket.ID, domain.TicketPriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketPriorityHigh, updated.Priority)

	_, err = f.svc.UpdateStatus(context.Background(), f.support, ticket.ID, domain.TicketStatus("resolved"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestUpdateStatusUnknownTicket(t *testing.T) {
	f := newTicketFixture(t)

	_, err := f.svc.UpdateStatus(context.Background(), f.support, 999, domain.TicketStatusClosed)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestDeleteTicketAdminOnly(t *testing.T) {
	f := newTicketFixture(t)
	ticket := f.createTicket(t, f.owner, "delete me")

	err := f.svc.DeleteTicket(context.Background(), f.owner, ticket.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	err = f.svc.DeleteTicket(context.Background(), f.support, ticket.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	require.NoError(t, f.svc.DeleteTicket(context.Background(), f.admin, ticket.ID))

	_, _, err = f.svc.GetTicket(context.Background(), f.admin, ticket.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestAddMessageAppendOnly(t *testing.T) {
	f := newTicketFixture(t)
	ticket := f.createTicket(t, f.owner, "chat")

	_, err := f.svc.AddMessage(context.Background(), f.owner, ticket.ID, "   ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, msgs, err := f.svc.GetTicket(context.Background(), f.owner, ticket.ID)
	require.NoError(t, err)
	assert.Empty(t, msgs, "rejected message must not change the thread")

	userMsg, err := f.svc.AddMessage(context.Background(), f.owner, ticket.ID, "please help")
	require.NoError(t, err)
	assert.False(t, userMsg.SupportSide)
	assert.Equal(t, "Петров П.П.", userMsg.AuthorName)

	supportMsg, err := f.svc.AddMessage(context.Background(), f.support, ticket.ID, "on it")
	require.NoError(t, err)
	assert.True(t, supportMsg.SupportSide)
	assert.Equal(t, "agent", supportMsg.AuthorName, "username stands in for an empty full name")

	_, err = f.svc.AddMessage(context.Background(), f.stranger, ticket.ID, "me too")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	_, msgs, err = f.svc.GetTicket(context.Background(), f.owner, ticket.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, userMsg.ID, msgs[0].ID)
	assert.Equal(t, supportMsg.ID, msgs[1].ID)
}

func TestCategoryDeletionKeepsTicketSnapshot(t *testing.T) {
	f := newTicketFixture(t)
	categorySvc := NewCategoryService(f.categories)
	ticket := f.createTicket(t, f.owner, "vpn trouble")

	vpn, err := f.categories.GetByName(context.Background(), "VPN")
	require.NoError(t, err)
	require.NoError(t, categorySvc.Delete(context.Background(), f.admin, vpn.ID))

	got, _, err := f.svc.GetTicket(context.Background(), f.owner, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "VPN", got.Category, "snapshot must survive category deletion")

	_, err = f.svc.CreateTicket(context.Background(), f.owner, TicketCreateInput{Title: "again", Category: "VPN"})
	require.Error(t, err, "new tickets cannot reference the deleted category")
}
