// internal/adapters/db/inventory_repository.go
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/ammerola/inventory-dashboard/internal/core/domain"
	"github.com/ammerola/inventory-dashboard/internal/core/ports"
)

// inventoryRepository implements ports.InventoryRepository
type inventoryRepository struct {
	db ports.Database
}

var _ ports.InventoryRepository = (*inventoryRepository)(nil)

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db ports.Database) ports.InventoryRepository {
	return &inventoryRepository{db: db}
}

// FindPage runs the count query and then the page query. The two statements
// are not wrapped in a transaction, so a concurrent write can make the total
// disagree with the rows by the size of that write.
func (r *inventoryRepository) FindPage(ctx context.Context, q domain.InventoryQuery) ([]domain.InventoryRecord, int64, error) {
	countSQL, countArgs, err := buildInventoryCountQuery(q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, domain.NewStoreError("count inventory", err)
	}

	pageSQL, pageArgs, err := buildInventoryPageQuery(q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build inventory query: %w", err)
	}

	records, err := r.queryRecords(ctx, pageSQL, pageArgs)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// FindAll returns every matching row in sort order, at most limit rows.
func (r *inventoryRepository) FindAll(ctx context.Context, q domain.InventoryQuery, limit int) ([]domain.InventoryRecord, error) {
	query, args, err := buildInventoryExportQuery(q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build export query: %w", err)
	}
	return r.queryRecords(ctx, query, args)
}

// Summary aggregates stock levels per category.
func (r *inventoryRepository) Summary(ctx context.Context) ([]domain.CategoryStock, error) {
	query, args, err := buildInventorySummaryQuery()
	if err != nil {
		return nil, fmt.Errorf("failed to build summary query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStoreError("summarize inventory", err)
	}
	defer rows.Close()

	stock := make([]domain.CategoryStock, 0, len(domain.Categories))
	for rows.Next() {
		var s domain.CategoryStock
		if err := rows.Scan(
			&s.Category, &s.Variants, &s.OnHand, &s.Reserved,
			&s.Available, &s.LowStock, &s.OutOfStock,
		); err != nil {
			return nil, domain.NewStoreError("scan inventory summary", err)
		}
		stock = append(stock, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("summarize inventory", err)
	}

	return stock, nil
}

func (r *inventoryRepository) queryRecords(ctx context.Context, query string, args []interface{}) ([]domain.InventoryRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStoreError("query inventory", err)
	}
	defer rows.Close()

	records := make([]domain.InventoryRecord, 0)
	for rows.Next() {
		rec, err := scanInventoryRecord(rows)
		if err != nil {
			return nil, domain.NewStoreError("scan inventory row", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("query inventory", err)
	}

	return records, nil
}

func scanInventoryRecord(row pgx.Row) (domain.InventoryRecord, error) {
	var (
		rec                 domain.InventoryRecord
		buyPrice, sellPrice pgtype.Numeric
	)

	err := row.Scan(
		&rec.ID, &rec.SKU, &rec.ProductName, &rec.Category,
		&rec.Size, &rec.Color,
		&rec.QuantityOnHand, &rec.QuantityReserved,
		&buyPrice, &sellPrice,
		&rec.LastModifiedAt,
	)
	if err != nil {
		return rec, err
	}

	if rec.BuyPrice, err = numericToDecimal(buyPrice); err != nil {
		return rec, fmt.Errorf("buy price: %w", err)
	}
	if rec.SellPrice, err = numericToDecimal(sellPrice); err != nil {
		return rec, fmt.Errorf("sell price: %w", err)
	}

	return rec, nil
}

// numericToDecimal converts a NUMERIC value; NULL becomes zero.
func numericToDecimal(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid {
		return decimal.Zero, nil
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return decimal.Zero, fmt.Errorf("non-finite numeric value")
	}
	if n.Int == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}
