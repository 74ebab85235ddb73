// test/helpers/fixtures.go
package helpers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/inventory-dashboard/internal/core/domain"
)

// StrPtr returns a pointer to s.
func StrPtr(s string) *string { return &s }

// CreateTestRecord builds an inventory listing row.
func CreateTestRecord(overrides ...func(*domain.InventoryRecord)) domain.InventoryRecord {
	rec := domain.InventoryRecord{
		ID:               uuid.New(),
		SKU:              "ECT-M-BLACK",
		ProductName:      "Essential Cotton Tee",
		Category:         domain.CategoryTShirt,
		Size:             StrPtr("m"),
		Color:            StrPtr("black"),
		QuantityOnHand:   20,
		QuantityReserved: 5,
		BuyPrice:         decimal.RequireFromString("8.99"),
		SellPrice:        decimal.RequireFromString("19.99"),
		LastModifiedAt:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	for _, override := range overrides {
		override(&rec)
	}

	return rec
}

// CreateTestRecords builds count distinct listing rows cycling through the
// categories.
func CreateTestRecords(count int) []domain.InventoryRecord {
	records := make([]domain.InventoryRecord, count)
	for i := 0; i < count; i++ {
		records[i] = CreateTestRecord(func(r *domain.InventoryRecord) {
			r.SKU = fmt.Sprintf("SKU-%03d", i+1)
			r.ProductName = fmt.Sprintf("Product %d", i+1)
			r.Category = domain.Categories[i%len(domain.Categories)]
			r.QuantityOnHand = 10 + i
			r.QuantityReserved = i % 3
			r.LastModifiedAt = r.LastModifiedAt.Add(time.Duration(i) * time.Minute)
		})
	}
	return records
}

// RecordValues returns rec as the column values of an inventory listing row,
// in scan order.
func RecordValues(rec domain.InventoryRecord) []any {
	var size, color any
	if rec.Size != nil {
		size = *rec.Size
	}
	if rec.Color != nil {
		color = *rec.Color
	}
	return []any{
		rec.ID, rec.SKU, rec.ProductName, string(rec.Category),
		size, color,
		rec.QuantityOnHand, rec.QuantityReserved,
		rec.BuyPrice.String(), rec.SellPrice.String(),
		rec.LastModifiedAt,
	}
}

// RecordRows wraps records as query results.
func RecordRows(records ...domain.InventoryRecord) *Rows {
	data := make([][]any, len(records))
	for i, rec := range records {
		data[i] = RecordValues(rec)
	}
	return NewRows(data...)
}

// CreateTestProduct builds a product without variants.
func CreateTestProduct(overrides ...func(*domain.Product)) *domain.Product {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &domain.Product{
		ID:          uuid.New(),
		Name:        "Essential Cotton Tee",
		Description: StrPtr("Heavyweight cotton tee"),
		Category:    domain.CategoryTShirt,
		Tags:        []string{"cotton", "basics"},
		CustomizableAreas: []domain.CustomizableArea{
			{Area: domain.AreaFront, MaxSize: domain.AreaSize{Width: 30, Height: 40}},
		},
		CreatedAt: now,
		UpdatedAt: now,
		Variants:  []domain.ProductVariant{},
	}

	for _, override := range overrides {
		override(p)
	}

	return p
}

// CreateTestVariant builds a variant of product.
func CreateTestVariant(product *domain.Product, size, color string) domain.ProductVariant {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return domain.ProductVariant{
		ID:        uuid.New(),
		ProductID: product.ID,
		SKU:       domain.BuildSKU(product.Name, size, color),
		Size:      StrPtr(size),
		Color:     StrPtr(color),
		ImageURLs: []string{},
		Gender:    "unisex",
		BuyPrice:  decimal.RequireFromString("8.99"),
		SellPrice: decimal.RequireFromString("19.99"),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TruncateAllTables truncates all tables in the test database
func TruncateAllTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	tables := []string{
		"inventory_transactions",
		"inventory_reservations",
		"inventory",
		"product_variants",
		"products",
	}

	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "Failed to truncate table: %s", table)
	}
}

// SeedProduct inserts p and its variants.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, p *domain.Product) {
	t.Helper()

	ctx := context.Background()
	_, err := pool.Exec(ctx, `
		INSERT INTO products (id, name, description, category, tags, customizable_areas, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Name, p.Description, string(p.Category), p.Tags, p.CustomizableAreas,
		p.CreatedAt, p.UpdatedAt,
	)
	require.NoError(t, err, "Failed to seed product")

	for _, v := range p.Variants {
		_, err := pool.Exec(ctx, `
			INSERT INTO product_variants (id, product_id, sku, size, color, gender, image_urls, buy_price, sell_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			v.ID, v.ProductID, v.SKU, v.Size, v.Color, v.Gender, v.ImageURLs,
			v.BuyPrice, v.SellPrice,
		)
		require.NoError(t, err, "Failed to seed variant %s", v.SKU)
	}
}

// SeedInventory inserts a stock record for variantID and returns its id.
func SeedInventory(t *testing.T, pool *pgxpool.Pool, variantID uuid.UUID, onHand, reserved int, modified time.Time) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(), `
		INSERT INTO inventory (product_variant_id, quantity_on_hand, quantity_reserved, last_modified_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		variantID, onHand, reserved, modified,
	).Scan(&id)
	require.NoError(t, err, "Failed to seed inventory")

	return id
}
