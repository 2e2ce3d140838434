package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AuthService coordinates the login/auto-provisioning flow.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	revoked    *auth.RevocationList
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Revoked    *auth.RevocationList
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL()),
		revoked:    deps.Revoked,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login authenticates by username/password. An unseen username is
// auto-provisioned: the password is hashed and stored, the chosen
// subdivision becomes the department, and the very first account in the
// store receives the admin role; everyone after that starts as a plain
// user.
func (s *AuthService) Login(ctx context.Context, username, password, subdivision string) (*domain.User, string, time.Time, error) {
	username = strings.TrimSpace(username)
	subdivision = strings.TrimSpace(subdivision)
	if username == "" || password == "" || subdivision == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("username, password and subdivision required", nil)
	}

	user, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if compareErr := auth.ComparePassword(user.PasswordHash, password); compareErr != nil {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
	case errors.Is(err, pgx.ErrNoRows):
		user, err = s.provision(ctx, username, password, subdivision)
		if err != nil {
			return nil, "", time.Time{}, err
		}
	default:
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

func (s *AuthService) provision(ctx context.Context, username, password, subdivision string) (*domain.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	role := domain.RoleUser
	if count == 0 {
		role = domain.RoleAdmin
	}

	user := &domain.User{
		Username:     username,
		Department:   subdivision,
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:  events.EventUserProvisioned,
		Actor: events.Actor{UserID: user.ID, Role: user.Role},
		Payload: events.UserProvisionedPayload{
			Username:   user.Username,
			Role:       user.Role,
			Department: user.Department,
		},
	})
	return user, nil
}

// Logout puts the token id on the revocation list until its natural
// expiry; the bearer middleware rejects it from then on.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.revoked.Revoke(ctx, tokenID, expiresAt)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
