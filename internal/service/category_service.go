package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// CategoryService manages the category catalogue. Deletion never
// cascades: tickets keep their category name snapshot.
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService constructs the service.
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// CategoryInput describes create/update payloads.
type CategoryInput struct {
	Name        string
	Description string
}

// List returns the full catalogue. Any authenticated caller may read
// it; the create-ticket form needs the current set.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// Create adds a category; support/admin only.
func (s *CategoryService) Create(ctx context.Context, caller *domain.User, input CategoryInput) (*domain.Category, error) {
	if !auth.Can(caller.Role, auth.ActionManageCategories) {
		return nil, apperrors.NewForbidden("role may not manage categories")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	category := &domain.Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update edits a category; support/admin only.
func (s *CategoryService) Update(ctx context.Context, caller *domain.User, id int64, input CategoryInput) (*domain.Category, error) {
	if !auth.Can(caller.Role, auth.ActionManageCategories) {
		return nil, apperrors.NewForbidden("role may not manage categories")
	}
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", nil)
		}
		return nil, err
	}
	if input.Name != "" {
		category.Name = strings.TrimSpace(input.Name)
	}
	if category.Name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	category.Description = strings.TrimSpace(input.Description)
	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", nil)
		}
		return nil, err
	}
	return category, nil
}

// Delete removes a category; support/admin only. Tickets created with
// the deleted name are untouched.
func (s *CategoryService) Delete(ctx context.Context, caller *domain.User, id int64) error {
	if !auth.Can(caller.Role, auth.ActionManageCategories) {
		return apperrors.NewForbidden("role may not manage categories")
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", nil)
		}
		return err
	}
	return nil
}
