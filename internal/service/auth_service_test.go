package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}
}

func newTestAuthService(users *fakeUserRepo) *AuthService {
	return NewAuthService(testConfig(), AuthDependencies{
		UserRepo:   users,
		Dispatcher: events.NewInMemoryDispatcher(),
	})
}

func TestLoginProvisionsFirstUserAsAdmin(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)

	user, token, _, err := svc.Login(context.Background(), "newhire", "pw1", "АУП")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.Equal(t, "newhire", user.Username)
	assert.Equal(t, "АУП", user.Department)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "pw1", user.PasswordHash)

	count, err := users.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestLoginProvisionsLaterUsersAsUser(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)

	_, _, _, err := svc.Login(context.Background(), "first", "pw", "АУП")
	require.NoError(t, err)

	second, _, _, err := svc.Login(context.Background(), "second", "pw", "СМУ")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, second.Role)
	assert.Equal(t, "СМУ", second.Department)
}

func TestLoginKnownUserVerifiesPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)

	created, _, _, err := svc.Login(context.Background(), "worker", "secret", "УСД")
	require.NoError(t, err)

	again, _, _, err := svc.Login(context.Background(), "worker", "secret", "УСД")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	count, _ := users.Count(context.Background())
	assert.EqualValues(t, 1, count, "repeat login must not provision a second account")

	_, _, _, err = svc.Login(context.Background(), "worker", "wrong", "УСД")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestLoginRequiresAllFields(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	cases := []struct {
		name                            string
		username, password, subdivision string
	}{
		{"missing username", "", "pw", "АУП"},
		{"missing password", "user", "", "АУП"},
		{"missing subdivision", "user", "pw", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := svc.Login(context.Background(), tc.username, tc.password, tc.subdivision)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
		})
	}
}
