package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title        string                `json:"title"`
	Category     string                `json:"category"`
	Description  string                `json:"description"`
	ComputerName string                `json:"computerName"`
	Priority     domain.TicketPriority `json:"priority"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// UpdatePriorityRequest payload.
type UpdatePriorityRequest struct {
	Priority domain.TicketPriority `json:"priority"`
}

// CreateMessageRequest payload for the ticket thread.
type CreateMessageRequest struct {
	Text string `json:"text"`
}

// TicketSummary response.
type TicketSummary struct {
	ID           int64                 `json:"id"`
	OwnerID      int64                 `json:"ownerId"`
	Title        string                `json:"title"`
	Category     string                `json:"category"`
	Status       domain.TicketStatus   `json:"status"`
	Priority     domain.TicketPriority `json:"priority"`
	ComputerName string                `json:"computerName"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// TicketDetail provides full ticket info with the message thread.
type TicketDetail struct {
	TicketSummary
	Description string            `json:"description"`
	Messages    []MessageResponse `json:"messages"`
}

// MessageResponse represents one thread entry.
type MessageResponse struct {
	ID          int64       `json:"id"`
	TicketID    int64       `json:"ticketId"`
	AuthorID    int64       `json:"authorId"`
	AuthorName  string      `json:"authorName"`
	AuthorRole  domain.Role `json:"authorRole"`
	SupportSide bool        `json:"supportSide"`
	Text        string      `json:"text"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// NewTicketSummary builds the summary projection.
func NewTicketSummary(ticket *domain.Ticket) TicketSummary {
	return TicketSummary{
		ID:           ticket.ID,
		OwnerID:      ticket.OwnerID,
		Title:        ticket.Title,
		Category:     ticket.Category,
		Status:       ticket.Status,
		Priority:     ticket.Priority,
		ComputerName: ticket.ComputerName,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
	}
}

// NewTicketDetail builds the detail projection with its thread.
func NewTicketDetail(ticket *domain.Ticket, messages []domain.Message) TicketDetail {
	detail := TicketDetail{
		TicketSummary: NewTicketSummary(ticket),
		Description:   ticket.Description,
		Messages:      make([]MessageResponse, 0, len(messages)),
	}
	for i := range messages {
		detail.Messages = append(detail.Messages, NewMessageResponse(&messages[i]))
	}
	return detail
}

// NewMessageResponse builds the message projection.
func NewMessageResponse(message *domain.Message) MessageResponse {
	return MessageResponse{
		ID:          message.ID,
		TicketID:    message.TicketID,
		AuthorID:    message.AuthorID,
		AuthorName:  message.AuthorName,
		AuthorRole:  message.AuthorRole,
		SupportSide: message.SupportSide,
		Text:        message.Body,
		CreatedAt:   message.CreatedAt,
	}
}
