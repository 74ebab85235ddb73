// internal/adapters/db/product_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ammerola/inventory-dashboard/internal/core/domain"
	"github.com/ammerola/inventory-dashboard/internal/core/ports"
)

var productColumns = []string{
	"id", "name", "description", "category", "tags",
	"customizable_areas", "created_at", "updated_at",
}

var variantColumns = []string{
	"id", "product_id", "sku", "size", "color", "color_hex",
	"weight_grams", "dimensions", "image_urls", "material", "gender",
	"buy_price", "sell_price", "created_at", "updated_at",
}

// productRepository implements ports.ProductRepository
type productRepository struct {
	db     ports.Database
	psql   squirrel.StatementBuilderType
	logger *slog.Logger
}

var _ ports.ProductRepository = (*productRepository)(nil)

// NewProductRepository creates a new product repository
func NewProductRepository(db ports.Database, logger *slog.Logger) ports.ProductRepository {
	return &productRepository{
		db:     db,
		psql:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		logger: logger.With(slog.String("repository", "product")),
	}
}

// List returns products with their variants, oldest first.
func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	qb := r.psql.Select(productColumns...).From("products").OrderBy("created_at ASC", "id ASC")

	if filter.Category != nil && *filter.Category != "" {
		qb = qb.Where(squirrel.Eq{"category": string(*filter.Category)})
	}
	if filter.Limit != nil {
		qb = qb.Limit(uint64(*filter.Limit))
	}
	if filter.Offset != nil {
		qb = qb.Offset(uint64(*filter.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStoreError("query products", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.NewStoreError("scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("query products", err)
	}

	if err := r.attachVariants(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

// FindByID returns the product with its variants or a NotFoundError.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query, args, err := r.psql.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	p, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "product", ID: id.String()}
		}
		return nil, domain.NewStoreError("find product", err)
	}

	products := []domain.Product{p}
	if err := r.attachVariants(ctx, products); err != nil {
		return nil, err
	}

	return &products[0], nil
}

// Create inserts the product row. Variants are not created here.
func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query, args, err := r.psql.Insert("products").
		Columns(productColumns...).
		Values(
			p.ID, p.Name, p.Description, string(p.Category), p.Tags,
			p.CustomizableAreas, p.CreatedAt, p.UpdatedAt,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.NewStoreError("create product", err)
	}
	if p.Variants == nil {
		p.Variants = []domain.ProductVariant{}
	}

	r.logger.DebugContext(ctx, "product created", slog.String("product_id", p.ID.String()))
	return nil
}

// Update overwrites the mutable product fields.
func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query, args, err := r.psql.Update("products").
		Set("name", p.Name).
		Set("description", p.Description).
		Set("category", string(p.Category)).
		Set("tags", p.Tags).
		Set("customizable_areas", p.CustomizableAreas).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return domain.NewStoreError("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "product", ID: p.ID.String()}
	}

	r.logger.DebugContext(ctx, "product updated", slog.String("product_id", p.ID.String()))
	return nil
}

// Delete removes the product; variants and their inventory cascade.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.psql.Delete("products").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return domain.NewStoreError("delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "product", ID: id.String()}
	}

	r.logger.DebugContext(ctx, "product deleted", slog.String("product_id", id.String()))
	return nil
}

// attachVariants loads the variants of all products in one query.
func (r *productRepository) attachVariants(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(products))
	index := make(map[uuid.UUID]int, len(products))
	for i := range products {
		ids[i] = products[i].ID
		index[products[i].ID] = i
		products[i].Variants = []domain.ProductVariant{}
	}

	query, args, err := r.psql.Select(variantColumns...).
		From("product_variants").
		Where(squirrel.Eq{"product_id": ids}).
		OrderBy("sku ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build variant query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return domain.NewStoreError("query product variants", err)
	}
	defer rows.Close()

	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return domain.NewStoreError("scan product variant", err)
		}
		if i, ok := index[v.ProductID]; ok {
			products[i].Variants = append(products[i].Variants, v)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.NewStoreError("query product variants", err)
	}

	return nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Tags,
		&p.CustomizableAreas, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func scanVariant(row pgx.Row) (domain.ProductVariant, error) {
	var (
		v                   domain.ProductVariant
		buyPrice, sellPrice pgtype.Numeric
	)

	err := row.Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.Size, &v.Color, &v.ColorHex,
		&v.WeightGrams, &v.Dimensions, &v.ImageURLs, &v.Material, &v.Gender,
		&buyPrice, &sellPrice, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return v, err
	}

	if v.BuyPrice, err = numericToDecimal(buyPrice); err != nil {
		return v, fmt.Errorf("buy price: %w", err)
	}
	if v.SellPrice, err = numericToDecimal(sellPrice); err != nil {
		return v, fmt.Errorf("sell price: %w", err)
	}

	return v, nil
}
