package wholesale

import (
	"context"

	"gorm.io/gorm"

	"github.com/Terellreed1/smokers-club-sub000/pkg/db/models"
	"github.com/Terellreed1/smokers-club-sub000/pkg/pagination"
)

// Repository wires wholesale inquiry persistence to gorm.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an inquiry row.
func (r *Repository) Create(ctx context.Context, inquiry *models.WholesaleInquiry) (*models.WholesaleInquiry, error) {
	if err := r.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		return nil, err
	}
	return inquiry, nil
}

// List returns inquiries newest first with the unpaginated count.
func (r *Repository) List(ctx context.Context, p pagination.Params) ([]models.WholesaleInquiry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.WholesaleInquiry{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.WholesaleInquiry
	err := query.
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
