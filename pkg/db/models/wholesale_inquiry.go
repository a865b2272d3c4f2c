package models

import (
	"time"

	"github.com/google/uuid"
)

// WholesaleInquiry is a B2B contact form submission.
type WholesaleInquiry struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessName string    `gorm:"column:business_name;not null"`
	ContactName  string    `gorm:"column:contact_name;not null"`
	Email        string    `gorm:"column:email;not null"`
	Phone        *string   `gorm:"column:phone"`
	Message      string    `gorm:"column:message;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (WholesaleInquiry) TableName() string { return "wholesale_inquiries" }
