package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestRolePermissionTable(t *testing.T) {
	cases := []struct {
		role   domain.Role
		action Action
		want   bool
	}{
		{domain.RoleUser, ActionCreateTicket, true},
		{domain.RoleUser, ActionEditOwnProfile, true},
		{domain.RoleUser, ActionViewAllTickets, false},
		{domain.RoleUser, ActionUpdateTicketStatus, false},
		{domain.RoleUser, ActionUpdateTicketPriority, false},
		{domain.RoleUser, ActionDeleteTicket, false},
		{domain.RoleUser, ActionManageCategories, false},
		{domain.RoleUser, ActionManageUsers, false},
		{domain.RoleUser, ActionViewDashboard, false},

		{domain.RoleSupport, ActionCreateTicket, true},
		{domain.RoleSupport, ActionViewAllTickets, true},
		{domain.RoleSupport, ActionUpdateTicketStatus, true},
		{domain.RoleSupport, ActionUpdateTicketPriority, true},
		{domain.RoleSupport, ActionDeleteTicket, false},
		{domain.RoleSupport, ActionManageCategories, true},
		{domain.RoleSupport, ActionManageUsers, true},
		{domain.RoleSupport, ActionViewDashboard, true},
		{domain.RoleSupport, ActionEditOwnProfile, true},

		{domain.RoleAdmin, ActionCreateTicket, true},
		{domain.RoleAdmin, ActionViewAllTickets, true},
		{domain.RoleAdmin, ActionUpdateTicketStatus, true},
		{domain.RoleAdmin, ActionUpdateTicketPriority, true},
		{domain.RoleAdmin, ActionDeleteTicket, true},
		{domain.RoleAdmin, ActionManageCategories, true},
		{domain.RoleAdmin, ActionManageUsers, true},
		{domain.RoleAdmin, ActionViewDashboard, true},
		{domain.RoleAdmin, ActionEditOwnProfile, true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Can(tc.role, tc.action),
			"role=%s action=%s", tc.role, tc.action)
	}
}

func TestCanRejectsUnknownRole(t *testing.T) {
	assert.False(t, Can(domain.Role("moderator"), ActionCreateTicket))
	assert.False(t, Can(domain.Role(""), ActionEditOwnProfile))
}
