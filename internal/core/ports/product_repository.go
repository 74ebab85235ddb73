// internal/core/ports/product_repository.go
package ports

import (
	"context"

	"github.com/ammerola/inventory-dashboard/internal/core/domain"
	"github.com/google/uuid"
)

// ProductRepository defines the persistence port for products.
type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
