// internal/adapters/db/inventory_query.go
package db

import (
	"github.com/Masterminds/squirrel"

	"github.com/ammerola/inventory-dashboard/internal/core/domain"
)

// inventoryColumns is the projection of the inventory listing, in scan order.
var inventoryColumns = []string{
	"inventory.id",
	"product_variants.sku",
	"products.name",
	"products.category",
	"product_variants.size",
	"product_variants.color",
	"inventory.quantity_on_hand",
	"inventory.quantity_reserved",
	"product_variants.buy_price",
	"product_variants.sell_price",
	"inventory.last_modified_at",
}

// sortColumns maps the public sort keys to physical columns. Anything not
// listed sorts by last modification.
var sortColumns = map[domain.SortField]string{
	domain.SortByProductName:    "products.name",
	domain.SortBySKU:            "product_variants.sku",
	domain.SortByQuantityOnHand: "inventory.quantity_on_hand",
	domain.SortByLastModified:   "inventory.last_modified_at",
}

// tieBreakColumn keeps page boundaries stable when the sort key has duplicates.
const tieBreakColumn = "inventory.id ASC"

// inventorySelect starts a query over the inventory ⋈ variant ⋈ product join.
// Count and data queries must both start here so their row sets agree.
func inventorySelect(columns ...string) squirrel.SelectBuilder {
	return squirrel.Select(columns...).
		From("inventory").
		InnerJoin("product_variants ON inventory.product_variant_id = product_variants.id").
		InnerJoin("products ON product_variants.product_id = products.id").
		PlaceholderFormat(squirrel.Dollar)
}

// inventoryFilter builds the conjunction of the category and search
// predicates. It is empty when the query filters nothing.
//
// The search term is matched as a substring of the product name or the SKU,
// case-insensitively. LIKE wildcards in the term are not escaped.
func inventoryFilter(q domain.InventoryQuery) squirrel.And {
	conds := squirrel.And{}

	if category := q.CategoryFilter(); category != "" {
		conds = append(conds, squirrel.Eq{"products.category": string(category)})
	}

	if term := q.SearchTerm(); term != "" {
		pattern := "%" + term + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"products.name": pattern},
			squirrel.ILike{"product_variants.sku": pattern},
		})
	}

	return conds
}

// applyInventoryFilter adds the WHERE clause for q, if any.
func applyInventoryFilter(qb squirrel.SelectBuilder, q domain.InventoryQuery) squirrel.SelectBuilder {
	if conds := inventoryFilter(q); len(conds) > 0 {
		qb = qb.Where(conds)
	}
	return qb
}

// inventoryOrderBy resolves the ORDER BY terms for q: the requested column
// and direction followed by the id tie-break.
func inventoryOrderBy(q domain.InventoryQuery) []string {
	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = sortColumns[domain.SortByLastModified]
	}

	direction := "DESC"
	if q.SortOrder == domain.SortAsc {
		direction = "ASC"
	}

	return []string{column + " " + direction, tieBreakColumn}
}

// buildInventoryCountQuery counts every row matching q's filters.
func buildInventoryCountQuery(q domain.InventoryQuery) (string, []interface{}, error) {
	return applyInventoryFilter(inventorySelect("COUNT(*)"), q).ToSql()
}

// buildInventoryPageQuery selects the rows of the page requested by q.
func buildInventoryPageQuery(q domain.InventoryQuery) (string, []interface{}, error) {
	return applyInventoryFilter(inventorySelect(inventoryColumns...), q).
		OrderBy(inventoryOrderBy(q)...).
		Limit(uint64(q.PageSize)).
		Offset(uint64(q.Offset())).
		ToSql()
}

// buildInventoryExportQuery selects up to limit rows matching q's filters in
// q's sort order, ignoring paging.
func buildInventoryExportQuery(q domain.InventoryQuery, limit int) (string, []interface{}, error) {
	qb := applyInventoryFilter(inventorySelect(inventoryColumns...), q).
		OrderBy(inventoryOrderBy(q)...)
	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}
	return qb.ToSql()
}

// buildInventorySummaryQuery aggregates stock per category.
func buildInventorySummaryQuery() (string, []interface{}, error) {
	const available = "inventory.quantity_on_hand - inventory.quantity_reserved"

	return inventorySelect(
		"products.category",
		"COUNT(*)",
		"COALESCE(SUM(inventory.quantity_on_hand), 0)",
		"COALESCE(SUM(inventory.quantity_reserved), 0)",
		"COALESCE(SUM("+available+"), 0)",
	).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE "+available+" > 0 AND "+available+" < ?)", domain.LowStockThreshold)).
		Column("COUNT(*) FILTER (WHERE " + available + " <= 0)").
		GroupBy("products.category").
		OrderBy("products.category ASC").
		ToSql()
}
