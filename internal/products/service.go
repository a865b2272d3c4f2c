package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Terellreed1/smokers-club-sub000/internal/cart"
	"github.com/Terellreed1/smokers-club-sub000/pkg/db/models"
	"github.com/Terellreed1/smokers-club-sub000/pkg/enums"
	pkgerrors "github.com/Terellreed1/smokers-club-sub000/pkg/errors"
	"github.com/Terellreed1/smokers-club-sub000/pkg/pagination"
)

type repository interface {
	List(ctx context.Context, filters ListFilters, p pagination.Params) ([]models.Product, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes catalog reads for shoppers and CRUD for admins.
type Service struct {
	repo repository
}

// NewService builds the product service.
func NewService(repo repository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &Service{repo: repo}, nil
}

// List returns one page of active products for the storefront.
func (s *Service) List(ctx context.Context, filters ListFilters, p pagination.Params) (*ListResult, error) {
	if filters.Category != "" {
		if _, err := enums.ParseProductCategory(filters.Category); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
		}
	}

	rows, total, err := s.repo.List(ctx, filters, p)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, FromModel(&rows[i]))
	}
	return &ListResult{
		Products: dtos,
		Meta:     pagination.NewMeta(p, total),
	}, nil
}

// Get returns one product, hiding inactive rows from shoppers.
func (s *Service) Get(ctx context.Context, id uuid.UUID, includeInactive bool) (*ProductDTO, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive && !includeInactive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	dto := FromModel(product)
	return &dto, nil
}

// Create validates and inserts a catalog product. The display price must
// parse as a usable amount so the cart never sees an unpriceable item.
func (s *Service) Create(ctx context.Context, input UpsertInput) (*ProductDTO, error) {
	product := &models.Product{}
	if err := applyInput(product, input); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	dto := FromModel(created)
	return &dto, nil
}

// Update validates and saves changes to an existing product.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpsertInput) (*ProductDTO, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyInput(product, input); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	dto := FromModel(updated)
	return &dto, nil
}

// Delete removes a product from the catalog.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *Service) findProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func applyInput(product *models.Product, input UpsertInput) error {
	category, err := enums.ParseProductCategory(strings.TrimSpace(input.Category))
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
	}

	price := strings.TrimSpace(input.Price)
	if _, err := cart.ParsePrice(price); err != nil {
		return err
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Brand = strings.TrimSpace(input.Brand)
	product.Category = string(category)
	product.Description = input.Description
	product.Price = price
	product.ImageURL = strings.TrimSpace(input.ImageURL)
	product.Effects = toStringArray(input.Effects)
	product.Flavors = toStringArray(input.Flavors)
	product.THCPercent = input.THCPercent

	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	} else if product.ID == uuid.Nil {
		product.IsActive = true
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.SortOrder != nil {
		product.SortOrder = *input.SortOrder
	}
	return nil
}
