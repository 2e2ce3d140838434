package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func seedUser(t *testing.T, users *fakeUserRepo, user domain.User) *domain.User {
	t.Helper()
	require.NoError(t, users.Create(context.Background(), &user))
	return &user
}

func strPtr(s string) *string { return &s }

func TestUpdateSelfCoalescesNilFields(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewProfileService(users)
	seeded := seedUser(t, users, domain.User{
		Username:   "ivanov",
		FullName:   "Иванов И.И.",
		Department: "АУП",
		Role:       domain.RoleUser,
	})

	updated, err := svc.UpdateSelf(context.Background(), seeded.ID, ProfileUpdateInput{
		Department: nil,
	})
	require.NoError(t, err)
	assert.Equal(t, "АУП", updated.Department, "nil field must keep the stored value")
	assert.Equal(t, "Иванов И.И.", updated.FullName)

	updated, err = svc.UpdateSelf(context.Background(), seeded.ID, ProfileUpdateInput{
		Department: strPtr("X"),
	})
	require.NoError(t, err)
	assert.Equal(t, "X", updated.Department)
}

func TestUpdateSelfValidatesComputerName(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewProfileService(users)
	seeded := seedUser(t, users, domain.User{Username: "petrov", Role: domain.RoleUser})

	_, err := svc.UpdateSelf(context.Background(), seeded.ID, ProfileUpdateInput{
		ComputerName: strPtr("workstation7"),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	updated, err := svc.UpdateSelf(context.Background(), seeded.ID, ProfileUpdateInput{
		ComputerName: strPtr("A-SIT11"),
	})
	require.NoError(t, err)
	assert.Equal(t, "A-SIT11", updated.ComputerName)
}

func TestUpdateSelfNeverTouchesRole(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewProfileService(users)
	seeded := seedUser(t, users, domain.User{Username: "sidorov", Role: domain.RoleUser})

	updated, err := svc.UpdateSelf(context.Background(), seeded.ID, ProfileUpdateInput{
		FullName:     strPtr("Сидоров С.С."),
		Department:   strPtr("СМУ"),
		ComputerName: strPtr("C-PC12"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, updated.Role)
	assert.True(t, updated.ProfileComplete())
}

func TestGetSelfUnknownIdentity(t *testing.T) {
	svc := NewProfileService(newFakeUserRepo())

	_, err := svc.GetSelf(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
