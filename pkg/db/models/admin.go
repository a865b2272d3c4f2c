package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser holds credentials for the admin panel.
type AdminUser struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (AdminUser) TableName() string { return "admin_users" }

// AdminSession is a fixed-lifetime bearer token. A session is valid iff the
// current time is strictly before ExpiresAt; there is no renewal.
type AdminSession struct {
	Token       string    `gorm:"column:token;primaryKey"`
	AdminUserID uuid.UUID `gorm:"column:admin_user_id;type:uuid;not null"`
	ExpiresAt   time.Time `gorm:"column:expires_at;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (AdminSession) TableName() string { return "admin_sessions" }
