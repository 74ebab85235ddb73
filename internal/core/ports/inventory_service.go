// internal/core/ports/inventory_service.go
package ports

import (
	"context"

	"github.com/ammerola/inventory-dashboard/internal/core/domain"
)

// InventoryService defines the application service port for inventory.
// This interface is implemented by the application service.
type InventoryService interface {
	List(ctx context.Context, q domain.InventoryQuery) (*domain.InventoryPage, error)
	Export(ctx context.Context, q domain.InventoryQuery) (*ExportResult, error)
	Summary(ctx context.Context) (*domain.InventorySummary, error)
}

// ExportResult is a rendered spreadsheet of the inventory listing.
type ExportResult struct {
	Filename string
	Data     []byte
	Rows     int
	// Key is the object key of the archived copy, empty when archiving is off.
	Key string
	// URL is a presigned download link for Key, when enabled.
	URL string
}
