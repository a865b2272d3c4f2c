package adminauth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Terellreed1/smokers-club-sub000/pkg/db/models"
)

// Repo persists admin users and their session tokens.
type Repo struct {
	db *gorm.DB
}

// NewRepo wraps the gorm handle.
func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// FindUserByEmail looks up an admin account by normalized email.
func (r *Repo) FindUserByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateSession stores a freshly minted session token.
func (r *Repo) CreateSession(ctx context.Context, session *models.AdminSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindSession returns the session row for a token.
func (r *Repo) FindSession(ctx context.Context, token string) (*models.AdminSession, error) {
	var session models.AdminSession
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession removes a token. Deleting an absent token is not an error.
func (r *Repo) DeleteSession(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&models.AdminSession{}).Error
}

// DeleteExpiredSessions clears every session past its expiry and returns the
// number of rows removed.
func (r *Repo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&models.AdminSession{})
	return result.RowsAffected, result.Error
}

// DeleteSessionsForUser revokes every session belonging to one admin.
func (r *Repo) DeleteSessionsForUser(ctx context.Context, adminUserID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("admin_user_id = ?", adminUserID).
		Delete(&models.AdminSession{}).Error
}
