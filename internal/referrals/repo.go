package referrals

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Terellreed1/smokers-club-sub000/pkg/db/models"
)

// Repository wires referral persistence to gorm.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindCodeByEmail loads the code minted for an email.
func (r *Repository) FindCodeByEmail(ctx context.Context, email string) (*models.ReferralCode, error) {
	var code models.ReferralCode
	if err := r.db.WithContext(ctx).First(&code, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

// FindByCode loads a referral code row by its public code.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.ReferralCode, error) {
	var record models.ReferralCode
	if err := r.db.WithContext(ctx).First(&record, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateCode inserts a referral code row.
func (r *Repository) CreateCode(ctx context.Context, code *models.ReferralCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

// CreateSignup inserts a signup attribution row.
func (r *Repository) CreateSignup(ctx context.Context, signup *models.ReferralSignup) error {
	return r.db.WithContext(ctx).Create(signup).Error
}

// CountSignups counts the signups attributed to a code.
func (r *Repository) CountSignups(ctx context.Context, codeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ReferralSignup{}).
		Where("referral_code_id = ?", codeID).
		Count(&count).Error
	return count, err
}
