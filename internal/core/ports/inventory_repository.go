// internal/core/ports/inventory_repository.go
package ports

import (
	"context"

	"github.com/ammerola/inventory-dashboard/internal/core/domain"
)

// InventoryRepository defines the read port over the inventory join.
// This interface is implemented by the database adapter.
type InventoryRepository interface {
	// FindPage returns the rows of the requested page and the number of rows
	// matching the query's filters across all pages.
	FindPage(ctx context.Context, q domain.InventoryQuery) ([]domain.InventoryRecord, int64, error)
	// FindAll returns every row matching the query's filters in its sort
	// order, capped at limit rows.
	FindAll(ctx context.Context, q domain.InventoryQuery, limit int) ([]domain.InventoryRecord, error)
	// Summary aggregates stock per category.
	Summary(ctx context.Context) ([]domain.CategoryStock, error)
}
