package adminauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Terellreed1/smokers-club-sub000/pkg/config"
	"github.com/Terellreed1/smokers-club-sub000/pkg/db/models"
	pkgerrors "github.com/Terellreed1/smokers-club-sub000/pkg/errors"
	"github.com/Terellreed1/smokers-club-sub000/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

type repository interface {
	FindUserByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	CreateSession(ctx context.Context, session *models.AdminSession) error
	FindSession(ctx context.Context, token string) (*models.AdminSession, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteSessionsForUser(ctx context.Context, adminUserID uuid.UUID) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// Service implements admin login, token verification, and logout.
type Service struct {
	repo repository
	ttl  time.Duration
	now  func() time.Time
}

// NewService builds the admin auth service. The session TTL comes from
// configuration and defaults to 24 hours.
func NewService(repo repository, cfg config.AdminAuthConfig) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("admin auth repository is required")
	}
	return &Service{
		repo: repo,
		ttl:  cfg.SessionTTL(),
		now:  time.Now,
	}, nil
}

// Login verifies the credentials and mints an opaque session token. The
// token is a random UUID; all authority lives in the sessions table.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup admin user")
	}

	valid, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	now := s.now().UTC()
	session := &models.AdminSession{
		Token:       uuid.NewString(),
		AdminUserID: user.ID,
		ExpiresAt:   now.Add(s.ttl),
		CreatedAt:   now,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store admin session")
	}

	return &LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Verify resolves a bearer token to the admin it belongs to. A token is
// valid only while the current time is strictly before its expiry; expired
// rows are deleted on sight.
func (s *Service) Verify(ctx context.Context, token string) (uuid.UUID, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session token")
	}

	session, err := s.repo.FindSession(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session token")
		}
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup admin session")
	}

	if !s.now().UTC().Before(session.ExpiresAt) {
		_ = s.repo.DeleteSession(ctx, token)
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}

	return session.AdminUserID, nil
}

// Logout revokes a token. Revoking an unknown or already revoked token
// succeeds so the endpoint stays idempotent.
func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if err := s.repo.DeleteSession(ctx, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete admin session")
	}
	return nil
}

// LogoutAll revokes every session the admin holds, the current one
// included. Used when a token may have leaked or a device was lost.
func (s *Service) LogoutAll(ctx context.Context, adminUserID uuid.UUID) error {
	if adminUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "admin id is required")
	}
	if err := s.repo.DeleteSessionsForUser(ctx, adminUserID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete admin sessions")
	}
	return nil
}

// PurgeExpired removes stale sessions. Called periodically from the
// server's background loop.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredSessions(ctx, s.now().UTC())
}
