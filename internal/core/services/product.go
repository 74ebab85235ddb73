package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/inventory-dashboard/internal/core/domain"
	"github.com/ammerola/inventory-dashboard/internal/core/ports"
)

// ProductService handles the product catalog.
type ProductService struct {
	repo   ports.ProductRepository
	cache  ports.CacheRepository
	logger *slog.Logger
	now    func() time.Time
}

var _ ports.ProductService = (*ProductService)(nil)

// NewProductService creates a new product service. cache may be nil.
func NewProductService(repo ports.ProductRepository, cache ports.CacheRepository, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("service", "product")),
		now:    time.Now,
	}
}

// List returns the products matching filter, each with its variants.
func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// Get returns one product with its variants.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// Create validates and stores a new product.
func (s *ProductService) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	if err := domain.ValidateProductInput(in, true); err != nil {
		return nil, err
	}

	p := &domain.Product{
		Tags:              []string{},
		CustomizableAreas: []domain.CustomizableArea{},
		Variants:          []domain.ProductVariant{},
	}
	in.Apply(p)
	p.PrepareForStorage()

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	invalidateInventory(ctx, s.cache, s.logger)
	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", p.ID.String()),
		slog.String("category", string(p.Category)))

	return p, nil
}

// Update applies the non-nil fields of in to the product and stamps
// updated_at.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, in domain.ProductInput) (*domain.Product, error) {
	if err := domain.ValidateProductInput(in, false); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	in.Apply(p)
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	invalidateInventory(ctx, s.cache, s.logger)
	s.logger.InfoContext(ctx, "product updated", slog.String("product_id", id.String()))

	return p, nil
}

// Delete removes a product; its variants and inventory cascade.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	invalidateInventory(ctx, s.cache, s.logger)
	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id.String()))

	return nil
}
