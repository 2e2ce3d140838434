package service

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// StatsService aggregates the dashboard counters.
type StatsService struct {
	tickets repository.TicketRepository
	users   repository.UserRepository
}

// NewStatsService constructs the service.
func NewStatsService(tickets repository.TicketRepository, users repository.UserRepository) *StatsService {
	return &StatsService{tickets: tickets, users: users}
}

// Overview is the dashboard payload.
type Overview struct {
	TotalTickets int64
	ByStatus     map[domain.TicketStatus]int64
	ByPriority   map[domain.TicketPriority]int64
	ByCategory   []repository.CategoryCount
	TotalUsers   int64
}

// Overview returns ticket counts by status, priority and category plus
// the account total; support/admin only.
func (s *StatsService) Overview(ctx context.Context, caller *domain.User) (*Overview, error) {
	if !auth.Can(caller.Role, auth.ActionViewDashboard) {
		return nil, apperrors.NewForbidden("role may not view the dashboard")
	}

	byStatus, err := s.tickets.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.tickets.CountByPriority(ctx)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.tickets.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		ByStatus:   make(map[domain.TicketStatus]int64, len(byStatus)),
		ByPriority: make(map[domain.TicketPriority]int64, len(byPriority)),
		ByCategory: byCategory,
		TotalUsers: totalUsers,
	}
	for _, entry := range byStatus {
		overview.ByStatus[entry.Status] = entry.Count
		overview.TotalTickets += entry.Count
	}
	for _, entry := range byPriority {
		overview.ByPriority[entry.Priority] = entry.Count
	}
	return overview, nil
}
