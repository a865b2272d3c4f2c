package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Terellreed1/smokers-club-sub000/pkg/db/models"
	"github.com/Terellreed1/smokers-club-sub000/pkg/pagination"
)

// ListFilters describe the supported filter knobs for the browse endpoint.
type ListFilters struct {
	Category string
	Brand    string
	Featured *bool
	Query    string
}

// ListResult is one page of catalog products.
type ListResult struct {
	Products []ProductDTO    `json:"products"`
	Meta     pagination.Meta `json:"meta"`
}

// ProductDTO is the public shape of a catalog product.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Category    string    `json:"category"`
	Description *string   `json:"description,omitempty"`
	Price       string    `json:"price"`
	ImageURL    string    `json:"image_url"`
	Effects     []string  `json:"effects,omitempty"`
	Flavors     []string  `json:"flavors,omitempty"`
	THCPercent  *float64  `json:"thc_percent,omitempty"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
}

// UpsertInput carries the admin payload for creating or updating a product.
type UpsertInput struct {
	Name        string   `json:"name" validate:"required"`
	Brand       string   `json:"brand" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Description *string  `json:"description,omitempty"`
	Price       string   `json:"price" validate:"required"`
	ImageURL    string   `json:"image_url" validate:"required,url"`
	Effects     []string `json:"effects,omitempty"`
	Flavors     []string `json:"flavors,omitempty"`
	THCPercent  *float64 `json:"thc_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	IsActive    *bool    `json:"is_active,omitempty"`
	IsFeatured  *bool    `json:"is_featured,omitempty"`
	SortOrder   *int     `json:"sort_order,omitempty"`
}

// FromModel maps a database row to its public shape.
func FromModel(m *models.Product) ProductDTO {
	return ProductDTO{
		ID:          m.ID,
		Name:        m.Name,
		Brand:       m.Brand,
		Category:    m.Category,
		Description: m.Description,
		Price:       m.Price,
		ImageURL:    m.ImageURL,
		Effects:     []string(m.Effects),
		Flavors:     []string(m.Flavors),
		THCPercent:  m.THCPercent,
		IsFeatured:  m.IsFeatured,
		CreatedAt:   m.CreatedAt,
	}
}

func toStringArray(values []string) pq.StringArray {
	if len(values) == 0 {
		return nil
	}
	return pq.StringArray(values)
}
