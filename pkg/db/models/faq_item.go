package models

import (
	"time"

	"github.com/google/uuid"
)

// FAQItem is a question/answer pair rendered on the FAQ page.
type FAQItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Question  string    `gorm:"column:question;not null"`
	Answer    string    `gorm:"column:answer;not null"`
	Position  int       `gorm:"column:position;not null;default:0"`
	Published bool      `gorm:"column:published;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (FAQItem) TableName() string { return "faq_items" }
