package faq

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
)

// UpsertInput is the admin payload for an FAQ entry.
type UpsertInput struct {
	Question  string `json:"question" validate:"required,max=500"`
	Answer    string `json:"answer" validate:"required"`
	Position  *int   `json:"position,omitempty"`
	Published *bool  `json:"published,omitempty"`
}

// ItemDTO is the public shape of an FAQ entry.
type ItemDTO struct {
	ID        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Position  int       `json:"position"`
	Published bool      `json:"published"`
	UpdatedAt time.Time `json:"updated_at"`
}

type repository interface {
	List(ctx context.Context, publishedOnly bool) ([]models.FAQItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.FAQItem, error)
	Create(ctx context.Context, item *models.FAQItem) (*models.FAQItem, error)
	Update(ctx context.Context, item *models.FAQItem) (*models.FAQItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service serves the public FAQ page and its admin editor.
type Service struct {
	repo repository
}

// NewService builds the FAQ service.
func NewService(repo repository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("faq repository is required")
	}
	return &Service{repo: repo}, nil
}

// List returns FAQ entries in display order. Shoppers only see published
// entries; admins see everything.
func (s *Service) List(ctx context.Context, includeUnpublished bool) ([]ItemDTO, error) {
	rows, err := s.repo.List(ctx, !includeUnpublished)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list faq items")
	}
	dtos := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, fromModel(&rows[i]))
	}
	return dtos, nil
}

// Create inserts a new FAQ entry, published by default.
func (s *Service) Create(ctx context.Context, input UpsertInput) (*ItemDTO, error) {
	item := &models.FAQItem{Published: true}
	if err := applyInput(item, input); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create faq item")
	}
	dto := fromModel(created)
	return &dto, nil
}

// Update saves changes to an FAQ entry.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpsertInput) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "faq item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load faq item")
	}
	if err := applyInput(item, input); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update faq item")
	}
	dto := fromModel(updated)
	return &dto, nil
}

// Delete removes an FAQ entry.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "faq item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete faq item")
	}
	return nil
}

func applyInput(item *models.FAQItem, input UpsertInput) error {
	question := strings.TrimSpace(input.Question)
	answer := strings.TrimSpace(input.Answer)
	if question == "" || answer == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "question and answer are required")
	}
	item.Question = question
	item.Answer = answer
	if input.Position != nil {
		item.Position = *input.Position
	}
	if input.Published != nil {
		item.Published = *input.Published
	}
	return nil
}

func fromModel(m *models.FAQItem) ItemDTO {
	return ItemDTO{
		ID:        m.ID,
		Question:  m.Question,
		Answer:    m.Answer,
		Position:  m.Position,
		Published: m.Published,
		UpdatedAt: m.UpdatedAt,
	}
}
