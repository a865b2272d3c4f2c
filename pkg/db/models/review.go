package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer review shown on the marketing site once approved.
type Review struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID *uuid.UUID `gorm:"column:product_id;type:uuid"`
	Author    string     `gorm:"column:author;not null"`
	Rating    int        `gorm:"column:rating;not null"`
	Body      string     `gorm:"column:body;not null"`
	Approved  bool       `gorm:"column:approved;not null;default:false"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Review) TableName() string { return "reviews" }
