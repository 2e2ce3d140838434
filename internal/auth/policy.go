package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// Action identifies a policy-gated operation.
type Action string

const (
	ActionCreateTicket         Action = "create_ticket"
	ActionViewAllTickets       Action = "view_all_tickets"
	ActionUpdateTicketStatus   Action = "update_ticket_status"
	ActionUpdateTicketPriority Action = "update_ticket_priority"
	ActionDeleteTicket         Action = "delete_ticket"
	ActionManageCategories     Action = "manage_categories"
	ActionManageUsers          Action = "manage_users"
	ActionViewDashboard        Action = "view_dashboard"
	ActionEditOwnProfile       Action = "edit_own_profile"
)

// permissions maps each role to its permitted action set. This is the
// single authorization source: route middleware and services both
// consult it, the client-side copy is UX only.
var permissions = map[domain.Role]map[Action]struct{}{
	domain.RoleUser: actionSet(
		ActionCreateTicket,
		ActionEditOwnProfile,
	),
	domain.RoleSupport: actionSet(
		ActionCreateTicket,
		ActionViewAllTickets,
		ActionUpdateTicketStatus,
		ActionUpdateTicketPriority,
		ActionManageCategories,
		ActionManageUsers,
		ActionViewDashboard,
		ActionEditOwnProfile,
	),
	domain.RoleAdmin: actionSet(
		ActionCreateTicket,
		ActionViewAllTickets,
		ActionUpdateTicketStatus,
		ActionUpdateTicketPriority,
		ActionDeleteTicket,
		ActionManageCategories,
		ActionManageUsers,
		ActionViewDashboard,
		ActionEditOwnProfile,
	),
}

func actionSet(actions ...Action) map[Action]struct{} {
	set := make(map[Action]struct{}, len(actions))
	for _, a := range actions {
		set[a] = struct{}{}
	}
	return set
}

// Can reports whether the role is permitted to perform the action.
func Can(role domain.Role, action Action) bool {
	allowed, ok := permissions[role]
	if !ok {
		return false
	}
	_, ok = allowed[action]
	return ok
}

// RequirePermission builds middleware rejecting callers whose role
// lacks the action.
func RequirePermission(action Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !Can(principal.User.Role, action) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
