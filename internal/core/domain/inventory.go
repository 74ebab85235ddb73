// internal/core/domain/inventory.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the available quantity under which a variant is
// reported as low on stock.
const LowStockThreshold = 5

// StockStatus classifies the available quantity of a variant.
type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockLow        StockStatus = "low_stock"
	StockOutOfStock StockStatus = "out_of_stock"
)

// Inventory is the stock record of one product variant.
type Inventory struct {
	ID               uuid.UUID  `json:"id"`
	ProductVariantID uuid.UUID  `json:"productVariantId"`
	QuantityOnHand   int        `json:"quantityOnHand"`
	QuantityReserved int        `json:"quantityReserved"`
	LastCountedAt    *time.Time `json:"lastCountedAt"`
	LastModifiedAt   time.Time  `json:"lastModifiedAt"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// InventoryRecord is one row of the inventory ⋈ variant ⋈ product join as
// read from the store.
type InventoryRecord struct {
	ID               uuid.UUID
	SKU              string
	ProductName      string
	Category         Category
	Size             *string
	Color            *string
	QuantityOnHand   int
	QuantityReserved int
	BuyPrice         decimal.Decimal
	SellPrice        decimal.Decimal
	LastModifiedAt   time.Time
}

// InventoryItem is the flat, read-only view of an inventory row served to
// the dashboard.
type InventoryItem struct {
	ID                uuid.UUID `json:"id"`
	SKU               string    `json:"sku"`
	ProductName       string    `json:"productName"`
	Category          Category  `json:"category"`
	Size              *string   `json:"size"`
	Color             *string   `json:"color"`
	QuantityOnHand    int       `json:"quantityOnHand"`
	QuantityReserved  int       `json:"quantityReserved"`
	QuantityAvailable int       `json:"quantityAvailable"`
	BuyPrice          string    `json:"buyPrice"`
	SellPrice         string    `json:"sellPrice"`
	LastModified      time.Time `json:"lastModified"`
}

// NewInventoryItem maps a joined row to its view model. Available quantity
// is on-hand minus reserved and is not clamped at zero.
func NewInventoryItem(r InventoryRecord) InventoryItem {
	return InventoryItem{
		ID:                r.ID,
		SKU:               r.SKU,
		ProductName:       r.ProductName,
		Category:          r.Category,
		Size:              r.Size,
		Color:             r.Color,
		QuantityOnHand:    r.QuantityOnHand,
		QuantityReserved:  r.QuantityReserved,
		QuantityAvailable: r.QuantityOnHand - r.QuantityReserved,
		BuyPrice:          r.BuyPrice.StringFixed(2),
		SellPrice:         r.SellPrice.StringFixed(2),
		LastModified:      r.LastModifiedAt,
	}
}

// NewInventoryItems maps rows in order. It never returns nil.
func NewInventoryItems(records []InventoryRecord) []InventoryItem {
	items := make([]InventoryItem, 0, len(records))
	for _, r := range records {
		items = append(items, NewInventoryItem(r))
	}
	return items
}

// StockStatus reports how much sellable stock is left.
func (i InventoryItem) StockStatus() StockStatus {
	switch {
	case i.QuantityAvailable <= 0:
		return StockOutOfStock
	case i.QuantityAvailable < LowStockThreshold:
		return StockLow
	default:
		return StockInStock
	}
}

// InventoryPage is one page of the inventory listing.
type InventoryPage struct {
	Items       []InventoryItem `json:"items"`
	TotalCount  int64           `json:"totalCount"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
	PageSize    int             `json:"pageSize"`
}

// NewInventoryPage assembles a page from mapped items and the filtered total.
func NewInventoryPage(q InventoryQuery, records []InventoryRecord, total int64) *InventoryPage {
	return &InventoryPage{
		Items:       NewInventoryItems(records),
		TotalCount:  total,
		TotalPages:  TotalPages(total, q.PageSize),
		CurrentPage: q.Page,
		PageSize:    q.PageSize,
	}
}

// CategoryStock aggregates the stock of one category.
type CategoryStock struct {
	Category   Category `json:"category"`
	Variants   int64    `json:"variants"`
	OnHand     int64    `json:"onHand"`
	Reserved   int64    `json:"reserved"`
	Available  int64    `json:"available"`
	LowStock   int64    `json:"lowStock"`
	OutOfStock int64    `json:"outOfStock"`
}

// InventorySummary is the dashboard overview of stock levels.
type InventorySummary struct {
	Categories  []CategoryStock `json:"categories"`
	Totals      CategoryStock   `json:"totals"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

// NewInventorySummary totals the per-category rows.
func NewInventorySummary(rows []CategoryStock, now time.Time) *InventorySummary {
	s := &InventorySummary{
		Categories:  make([]CategoryStock, 0, len(rows)),
		Totals:      CategoryStock{Category: CategoryAll},
		GeneratedAt: now,
	}
	for _, r := range rows {
		s.Categories = append(s.Categories, r)
		s.Totals.Variants += r.Variants
		s.Totals.OnHand += r.OnHand
		s.Totals.Reserved += r.Reserved
		s.Totals.Available += r.Available
		s.Totals.LowStock += r.LowStock
		s.Totals.OutOfStock += r.OutOfStock
	}
	return s
}
