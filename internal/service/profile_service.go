package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// ProfileService reads and updates the caller's own account row.
type ProfileService struct {
	users repository.UserRepository
}

// NewProfileService builds the service.
func NewProfileService(users repository.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// ProfileUpdateInput carries a partial profile edit. Nil fields keep
// the stored value (coalesce-on-null semantics).
type ProfileUpdateInput struct {
	FullName     *string
	Department   *string
	ComputerName *string
}

// GetSelf returns the caller's own row only.
func (s *ProfileService) GetSelf(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// UpdateSelf applies a partial update to the caller's profile. Role is
// never mutable through this path.
func (s *ProfileService) UpdateSelf(ctx context.Context, userID int64, input ProfileUpdateInput) (*domain.User, error) {
	user, err := s.GetSelf(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Department != nil {
		user.Department = strings.TrimSpace(*input.Department)
	}
	if input.ComputerName != nil {
		name := strings.TrimSpace(*input.ComputerName)
		if name != "" && !domain.ComputerNamePattern.MatchString(name) {
			return nil, apperrors.NewValidationError("computer name must look like A-SIT11", map[string]any{
				"computerName": name,
			})
		}
		user.ComputerName = name
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}
