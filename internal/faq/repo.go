package faq

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Terellreed1/smokers-club-sub000/pkg/db/models"
)

// Repository wires FAQ persistence to gorm.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns FAQ items ordered for display.
func (r *Repository) List(ctx context.Context, publishedOnly bool) ([]models.FAQItem, error) {
	query := r.db.WithContext(ctx).Model(&models.FAQItem{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	var rows []models.FAQItem
	if err := query.Order("position ASC, created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads one FAQ item.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.FAQItem, error) {
	var item models.FAQItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts an FAQ row.
func (r *Repository) Create(ctx context.Context, item *models.FAQItem) (*models.FAQItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Update saves the full FAQ row.
func (r *Repository) Update(ctx context.Context, item *models.FAQItem) (*models.FAQItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes the FAQ row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FAQItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
