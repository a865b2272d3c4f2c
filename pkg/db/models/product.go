package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is a catalog listing on the shop page. Price is stored as the
// display string the storefront renders (e.g. "$65"); the numeric value is
// derived by the cart's price parser and validated before any product is
// written or added to a cart.
type Product struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string         `gorm:"column:name;not null"`
	Brand       string         `gorm:"column:brand;not null"`
	Category    string         `gorm:"column:category;not null"`
	Description *string        `gorm:"column:description"`
	Price       string         `gorm:"column:price;not null"`
	ImageURL    string         `gorm:"column:image_url;not null"`
	Effects     pq.StringArray `gorm:"column:effects;type:text[]"`
	Flavors     pq.StringArray `gorm:"column:flavors;type:text[]"`
	THCPercent  *float64       `gorm:"column:thc_percent;type:numeric(5,2)"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true"`
	IsFeatured  bool           `gorm:"column:is_featured;not null;default:false"`
	SortOrder   int            `gorm:"column:sort_order;not null;default:0"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }
