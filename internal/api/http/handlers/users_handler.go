package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// UsersHandler exposes profile endpoints and the users management view.
type UsersHandler struct {
	profiles *service.ProfileService
	admin    *service.UserAdminService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(profiles *service.ProfileService, admin *service.UserAdminService) *UsersHandler {
	return &UsersHandler{profiles: profiles, admin: admin}
}

// GetMe handles GET /api/users/me.
func (h *UsersHandler) GetMe(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.profiles.GetSelf(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserProfile(user))
}

// UpdateMe handles PATCH /api/users/me. Omitted or null fields keep
// their stored values.
func (h *UsersHandler) UpdateMe(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.profiles.UpdateSelf(c.Context(), principal.User.ID, service.ProfileUpdateInput{
		FullName:     req.FullName,
		Department:   req.Department,
		ComputerName: req.ComputerName,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserProfile(user))
}

// List handles GET /api/users (support/admin).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	users, err := h.admin.List(c.Context(), principal.User, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.UserProfile, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserProfile(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /api/users (admin).
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.admin.Create(c.Context(), principal.User, service.UserCreateInput{
		Username:     req.Username,
		Password:     req.Password,
		FullName:     req.FullName,
		Department:   req.Department,
		ComputerName: req.ComputerName,
		Role:         req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserProfile(user)})
}
