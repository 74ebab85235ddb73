// internal/core/ports/product_service.go
package ports

import (
	"context"

	"github.com/ammerola/inventory-dashboard/internal/core/domain"
	"github.com/google/uuid"
)

// ProductService defines the application service port for the product catalog.
type ProductService interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, in domain.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
