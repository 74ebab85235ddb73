// test/benchmarks/helpers.go
package benchmarks

import (
	"context"
	"log/slog"
	"net/url"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/inventory-dashboard/internal/core/domain"
	"github.com/ammerola/inventory-dashboard/internal/core/ports"
	"github.com/ammerola/inventory-dashboard/test/helpers"
)

// staticRepository serves a fixed record set so benchmarks measure the
// service and rendering layers without a database.
type staticRepository struct {
	records []domain.InventoryRecord
}

var _ ports.InventoryRepository = (*staticRepository)(nil)

func newStaticRepository(n int) *staticRepository {
	return &staticRepository{records: helpers.CreateTestRecords(n)}
}

func (r *staticRepository) FindPage(_ context.Context, q domain.InventoryQuery) ([]domain.InventoryRecord, int64, error) {
	if q.Offset() >= int64(len(r.records)) {
		return nil, int64(len(r.records)), nil
	}
	start := int(q.Offset())
	end := start + q.PageSize
	if end > len(r.records) {
		end = len(r.records)
	}
	return r.records[start:end], int64(len(r.records)), nil
}

func (r *staticRepository) FindAll(_ context.Context, _ domain.InventoryQuery, limit int) ([]domain.InventoryRecord, error) {
	if limit < len(r.records) {
		return r.records[:limit], nil
	}
	return r.records, nil
}

func (r *staticRepository) Summary(_ context.Context) ([]domain.CategoryStock, error) {
	byCategory := make(map[domain.Category]*domain.CategoryStock)
	for _, rec := range r.records {
		cs, ok := byCategory[rec.Category]
		if !ok {
			cs = &domain.CategoryStock{Category: rec.Category}
			byCategory[rec.Category] = cs
		}
		cs.Variants++
		cs.OnHand += int64(rec.QuantityOnHand)
		cs.Reserved += int64(rec.QuantityReserved)
		cs.Available += int64(rec.QuantityOnHand - rec.QuantityReserved)
	}

	rows := make([]domain.CategoryStock, 0, len(byCategory))
	for _, c := range domain.Categories {
		if cs, ok := byCategory[c]; ok {
			rows = append(rows, *cs)
		}
	}
	return rows, nil
}

// startRedis runs an in-memory Redis for the duration of the benchmark.
func startRedis(b *testing.B) *redis.Client {
	b.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		b.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	b.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client
}

func benchLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// listingQueries is a mix of realistic dashboard query strings.
var listingQueries = []url.Values{
	{},
	{"page": {"2"}, "pageSize": {"25"}},
	{"category": {"hoodie"}, "sortBy": {"sku"}, "sortOrder": {"asc"}},
	{"search": {"black"}, "pageSize": {"50"}, "sortBy": {"quantityOnHand"}},
	{"category": {"all"}, "search": {"  tote  "}, "sortBy": {"productName"}, "sortOrder": {"desc"}},
}
