package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Terellreed1/smokers-club-sub000/pkg/db/models"
	pkgerrors "github.com/Terellreed1/smokers-club-sub000/pkg/errors"
	"github.com/Terellreed1/smokers-club-sub000/pkg/pagination"
)

// SubmitInput is the shopper payload for a new review.
type SubmitInput struct {
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Author    string     `json:"author" validate:"required,max=120"`
	Rating    int        `json:"rating" validate:"required,gte=1,lte=5"`
	Body      string     `json:"body" validate:"required,max=4000"`
}

// ReviewDTO is the public shape of a review.
type ReviewDTO struct {
	ID        uuid.UUID  `json:"id"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Author    string     `json:"author"`
	Rating    int        `json:"rating"`
	Body      string     `json:"body"`
	Approved  bool       `json:"approved"`
	CreatedAt time.Time  `json:"created_at"`
}

// ListResult is one page of reviews.
type ListResult struct {
	Reviews []ReviewDTO     `json:"reviews"`
	Meta    pagination.Meta `json:"meta"`
}

type repository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	List(ctx context.Context, productID *uuid.UUID, approvedOnly bool, p pagination.Params) ([]models.Review, int64, error)
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service handles shopper review submission and admin moderation. New
// reviews stay hidden until an admin approves them.
type Service struct {
	repo repository
}

// NewService builds the review service.
func NewService(repo repository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository is required")
	}
	return &Service{repo: repo}, nil
}

// Submit stores a pending review.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*ReviewDTO, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	author := strings.TrimSpace(input.Author)
	body := strings.TrimSpace(input.Body)
	if author == "" || body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "author and body are required")
	}

	review, err := s.repo.Create(ctx, &models.Review{
		ProductID: input.ProductID,
		Author:    author,
		Rating:    input.Rating,
		Body:      body,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store review")
	}
	dto := fromModel(review)
	return &dto, nil
}

// ListApproved returns the public review feed, optionally scoped to one
// product.
func (s *Service) ListApproved(ctx context.Context, productID *uuid.UUID, p pagination.Params) (*ListResult, error) {
	return s.list(ctx, productID, true, p)
}

// ListAll returns every review for the moderation queue.
func (s *Service) ListAll(ctx context.Context, p pagination.Params) (*ListResult, error) {
	return s.list(ctx, nil, false, p)
}

// Approve publishes a pending review.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SetApproved(ctx, id, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve review")
	}
	return nil
}

// Delete removes a review outright.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete review")
	}
	return nil
}

func (s *Service) list(ctx context.Context, productID *uuid.UUID, approvedOnly bool, p pagination.Params) (*ListResult, error) {
	rows, total, err := s.repo.List(ctx, productID, approvedOnly, p)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	dtos := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, fromModel(&rows[i]))
	}
	return &ListResult{Reviews: dtos, Meta: pagination.NewMeta(p, total)}, nil
}

func fromModel(m *models.Review) ReviewDTO {
	return ReviewDTO{
		ID:        m.ID,
		ProductID: m.ProductID,
		Author:    m.Author,
		Rating:    m.Rating,
		Body:      m.Body,
		Approved:  m.Approved,
		CreatedAt: m.CreatedAt,
	}
}
