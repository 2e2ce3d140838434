package service

import (
	"context"
	"strings"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// UserAdminService serves the users management view: staff list
// accounts, administrators create them explicitly with a chosen role.
type UserAdminService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserAdminService constructs the service.
func NewUserAdminService(users repository.UserRepository, bcryptCost int) *UserAdminService {
	return &UserAdminService{users: users, bcryptCost: bcryptCost}
}

// UserCreateInput describes explicit account creation by an admin.
type UserCreateInput struct {
	Username     string
	Password     string
	FullName     string
	Department   string
	ComputerName string
	Role         domain.Role
}

// List returns accounts for the users management view; support/admin only.
func (s *UserAdminService) List(ctx context.Context, caller *domain.User, limit, offset int) ([]domain.User, error) {
	if !auth.Can(caller.Role, auth.ActionManageUsers) {
		return nil, apperrors.NewForbidden("role may not manage users")
	}
	return s.users.List(ctx, limit, offset)
}

// Create provisions an account with an explicit role; admin only.
func (s *UserAdminService) Create(ctx context.Context, caller *domain.User, input UserCreateInput) (*domain.User, error) {
	if caller.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("admin required")
	}

	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("username and password required", nil)
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflict("username already taken", map[string]any{"username": username})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Username:     username,
		FullName:     strings.TrimSpace(input.FullName),
		Department:   strings.TrimSpace(input.Department),
		ComputerName: strings.TrimSpace(input.ComputerName),
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
