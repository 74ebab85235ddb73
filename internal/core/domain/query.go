package domain

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// SortField is a logical inventory sort key.
type SortField string

const (
	SortByProductName    SortField = "productName"
	SortBySKU            SortField = "sku"
	SortByQuantityOnHand SortField = "quantityOnHand"
	SortByLastModified   SortField = "lastModified"
)

// SortOrder is an ordering direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Paging defaults and bounds.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Query string keys accepted by the inventory listing.
const (
	ParamPage      = "page"
	ParamPageSize  = "pageSize"
	ParamCategory  = "category"
	ParamSearch    = "search"
	ParamSortBy    = "sortBy"
	ParamSortOrder = "sortOrder"
)

// InventoryQuery is the normalized set of inventory listing parameters.
type InventoryQuery struct {
	Page      int       `json:"page" validate:"min=1"`
	PageSize  int       `json:"pageSize" validate:"min=1,max=100"`
	Category  Category  `json:"category" validate:"oneof=all t-shirt polo-shirt hoodie tote-bag"`
	Search    *string   `json:"search"`
	SortBy    SortField `json:"sortBy" validate:"oneof=productName sku quantityOnHand lastModified"`
	SortOrder SortOrder `json:"sortOrder" validate:"oneof=asc desc"`
}

// DefaultInventoryQuery returns the query used when no parameters are given.
func DefaultInventoryQuery() InventoryQuery {
	return InventoryQuery{
		Page:      DefaultPage,
		PageSize:  DefaultPageSize,
		Category:  CategoryAll,
		SortBy:    SortByLastModified,
		SortOrder: SortDesc,
	}
}

// ParseInventoryQuery turns raw query values into an InventoryQuery.
// Empty values count as absent. All invalid fields are reported together.
func ParseInventoryQuery(values url.Values) (InventoryQuery, error) {
	q := DefaultInventoryQuery()
	ve := &ValidationError{}

	if raw := strings.TrimSpace(values.Get(ParamPage)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			ve.Add(ParamPage, "must be an integer")
		} else {
			q.Page = n
		}
	}

	if raw := strings.TrimSpace(values.Get(ParamPageSize)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			ve.Add(ParamPageSize, "must be an integer")
		} else {
			q.PageSize = n
		}
	}

	if raw := values.Get(ParamCategory); raw != "" {
		q.Category = Category(raw)
	}
	if raw := values.Get(ParamSearch); raw != "" {
		q.Search = &raw
	}
	if raw := values.Get(ParamSortBy); raw != "" {
		q.SortBy = SortField(raw)
	}
	if raw := values.Get(ParamSortOrder); raw != "" {
		q.SortOrder = SortOrder(raw)
	}

	validateStruct(q, ve)
	if err := ve.OrNil(); err != nil {
		return InventoryQuery{}, err
	}
	return q, nil
}

// SearchTerm returns the search string, or "" when none was given.
func (q InventoryQuery) SearchTerm() string {
	if q.Search == nil {
		return ""
	}
	return *q.Search
}

// CategoryFilter returns the category to filter on, or "" for all categories.
func (q InventoryQuery) CategoryFilter() Category {
	if q.Category == CategoryAll {
		return ""
	}
	return q.Category
}

// Offset is the number of rows skipped before the requested page. It
// saturates at math.MaxInt64 so very large pages read past the end.
func (q InventoryQuery) Offset() int64 {
	if q.Page <= 1 || q.PageSize <= 0 {
		return 0
	}
	skipped, size := int64(q.Page-1), int64(q.PageSize)
	if skipped > math.MaxInt64/size {
		return math.MaxInt64
	}
	return skipped * size
}

// TotalPages returns ceil(total / pageSize).
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := total / int64(pageSize)
	if total%int64(pageSize) > 0 {
		pages++
	}
	return int(pages)
}
