package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abuRizq/vegetable-shop/internal/auth/domain"
	"github.com/abuRizq/vegetable-shop/internal/auth/store"
	"github.com/abuRizq/vegetable-shop/pkg/idx"
)

var (
	ErrCategoryTaken   = errors.New("category name already in use")
	ErrUnknownCategory = errors.New("unknown category")
)

// CatalogService manages the product catalog. Browsing is public; writes are
// admin operations.
type CatalogService struct {
	Store store.Store
}

// CreateCategory adds a category with a unique name.
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	c := domain.Category{
		ID:   idx.New().String(),
		Name: strings.TrimSpace(name),
	}

	if err := s.Store.Categories().Create(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Category{}, ErrCategoryTaken
		}
		return domain.Category{}, fmt.Errorf("creating category: %w", err)
	}
	return s.Store.Categories().GetByID(ctx, c.ID)
}

// ListCategories returns every category, ordered by name.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.Store.Categories().List(ctx)
}

// CreateProductParams carries the writable product fields.
type CreateProductParams struct {
	CategoryID         string
	Name               string
	Description        string
	PriceCents         int64
	DiscountPriceCents *int64
}

// CreateProduct adds a product to an existing category. The category check
// runs first so a bad id surfaces as ErrUnknownCategory instead of a driver
// error.
func (s *CatalogService) CreateProduct(ctx context.Context, params CreateProductParams) (domain.Product, error) {
	if _, err := s.Store.Categories().GetByID(ctx, params.CategoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Product{}, ErrUnknownCategory
		}
		return domain.Product{}, fmt.Errorf("checking category: %w", err)
	}

	p := domain.Product{
		ID:                 idx.New().String(),
		CategoryID:         params.CategoryID,
		Name:               strings.TrimSpace(params.Name),
		Description:        params.Description,
		PriceCents:         params.PriceCents,
		DiscountPriceCents: params.DiscountPriceCents,
	}

	if err := s.Store.Products().Create(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("creating product: %w", err)
	}
	return s.Store.Products().GetByID(ctx, p.ID)
}

// GetProduct fetches a product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	return s.Store.Products().GetByID(ctx, id)
}

// ListProducts returns a page of products (newest first) plus the total
// count, optionally scoped to a category.
func (s *CatalogService) ListProducts(ctx context.Context, categoryID string, limit, offset int) ([]domain.Product, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.Store.Products().List(ctx, categoryID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Store.Products().Count(ctx, categoryID)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}
