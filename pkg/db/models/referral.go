package models

import (
	"time"

	"github.com/google/uuid"
)

// ReferralCode maps a shopper email to their shareable code.
type ReferralCode struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code      string    `gorm:"column:code;uniqueIndex;not null"`
	Email     string    `gorm:"column:email;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ReferralCode) TableName() string { return "referral_codes" }

// ReferralSignup records a new customer attributed to a referral code.
type ReferralSignup struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ReferralCodeID uuid.UUID `gorm:"column:referral_code_id;type:uuid;not null"`
	Email          string    `gorm:"column:email;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ReferralSignup) TableName() string { return "referral_signups" }
