package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func TestCategoryManagementRequiresStaff(t *testing.T) {
	categories := newFakeCategoryRepo()
	users := newFakeUserRepo()
	svc := NewCategoryService(categories)

	endUser := seedUser(t, users, domain.User{Username: "user", Role: domain.RoleUser})
	support := seedUser(t, users, domain.User{Username: "agent", Role: domain.RoleSupport})

	_, err := svc.Create(context.Background(), endUser, CategoryInput{Name: "VPN"})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	created, err := svc.Create(context.Background(), support, CategoryInput{Name: "  VPN  ", Description: "remote access"})
	require.NoError(t, err)
	assert.Equal(t, "VPN", created.Name, "name is trimmed")

	err = svc.Delete(context.Background(), endUser, created.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	require.NoError(t, svc.Delete(context.Background(), support, created.ID))
}

func TestCategoryCreateRequiresName(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo())
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}

	_, err := svc.Create(context.Background(), admin, CategoryInput{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestCategoryUpdate(t *testing.T) {
	categories := newFakeCategoryRepo()
	svc := NewCategoryService(categories)
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}

	created, err := svc.Create(context.Background(), admin, CategoryInput{Name: "Printer"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), admin, created.ID, CategoryInput{Name: "Printers", Description: "hardware"})
	require.NoError(t, err)
	assert.Equal(t, "Printers", updated.Name)
	assert.Equal(t, "hardware", updated.Description)

	_, err = svc.Update(context.Background(), admin, 999, CategoryInput{Name: "x"})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestCategoryDeleteUnknown(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo())
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}

	err := svc.Delete(context.Background(), admin, 404)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestCategoryListOpenToAnyRole(t *testing.T) {
	categories := newFakeCategoryRepo()
	svc := NewCategoryService(categories)
	require.NoError(t, categories.Create(context.Background(), &domain.Category{Name: "VPN"}))
	require.NoError(t, categories.Create(context.Background(), &domain.Category{Name: "Email"}))

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Email", list[0].Name, "sorted by name")
}
