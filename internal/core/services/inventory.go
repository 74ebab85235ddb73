// internal/core/services/inventory.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/ammerola/inventory-dashboard/internal/core/domain"
	"github.com/ammerola/inventory-dashboard/internal/core/ports"
)

// DefaultExportMaxRows caps exports when no limit is configured.
const DefaultExportMaxRows = 10000

// InventoryOptions tunes caching and export limits of the inventory service.
type InventoryOptions struct {
	PageTTL       time.Duration
	SummaryTTL    time.Duration
	ExportMaxRows int
	// PresignedTTL enables a download URL for archived exports.
	PresignedTTL time.Duration
}

// InventoryService handles inventory business logic
type InventoryService struct {
	repo    ports.InventoryRepository
	cache   ports.CacheRepository
	storage ports.ObjectStorage
	opts    InventoryOptions
	logger  *slog.Logger
	now     func() time.Time
}

// Statically assert that *InventoryService implements the InventoryService interface.
var _ ports.InventoryService = (*InventoryService)(nil)

// NewInventoryService creates a new inventory service. cache and storage
// may be nil, which disables page caching and export archiving.
func NewInventoryService(
	repo ports.InventoryRepository,
	cache ports.CacheRepository,
	storage ports.ObjectStorage,
	opts InventoryOptions,
	logger *slog.Logger,
) *InventoryService {
	if opts.ExportMaxRows <= 0 {
		opts.ExportMaxRows = DefaultExportMaxRows
	}
	return &InventoryService{
		repo:    repo,
		cache:   cache,
		storage: storage,
		opts:    opts,
		logger:  logger.With(slog.String("service", "inventory")),
		now:     time.Now,
	}
}

// List returns one page of the inventory listing.
func (s *InventoryService) List(ctx context.Context, q domain.InventoryQuery) (*domain.InventoryPage, error) {
	fetch := func() (interface{}, error) {
		records, total, err := s.repo.FindPage(ctx, q)
		if err != nil {
			return nil, err
		}
		s.logger.DebugContext(ctx, "inventory page loaded",
			slog.Int("page", q.Page),
			slog.Int("rows", len(records)),
			slog.Int64("total", total))
		return domain.NewInventoryPage(q, records, total), nil
	}

	if s.cache == nil || s.opts.PageTTL <= 0 {
		page, err := fetch()
		if err != nil {
			return nil, fmt.Errorf("failed to list inventory: %w", err)
		}
		return page.(*domain.InventoryPage), nil
	}

	var page domain.InventoryPage
	if err := s.cache.GetOrSet(ctx, InventoryPageKey(q), &page, fetch, s.opts.PageTTL); err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	if page.Items == nil {
		page.Items = []domain.InventoryItem{}
	}
	return &page, nil
}

// Export renders every row matching q's filters, in q's sort order, as a
// spreadsheet. Paging fields of q are ignored.
func (s *InventoryService) Export(ctx context.Context, q domain.InventoryQuery) (*ports.ExportResult, error) {
	records, err := s.repo.FindAll(ctx, q, s.opts.ExportMaxRows)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory for export: %w", err)
	}

	items := domain.NewInventoryItems(records)
	data, err := renderInventoryWorkbook(items)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	result := &ports.ExportResult{
		Filename: fmt.Sprintf("inventory_export_%s.xlsx", now.Format("20060102_150405")),
		Data:     data,
		Rows:     len(items),
	}

	if len(items) == s.opts.ExportMaxRows {
		s.logger.WarnContext(ctx, "export reached row cap",
			slog.Int("max_rows", s.opts.ExportMaxRows))
	}

	if s.storage != nil {
		key := "exports/" + result.Filename
		if _, err := s.storage.Upload(ctx, key, bytes.NewReader(data), XLSXContentType); err != nil {
			s.logger.WarnContext(ctx, "failed to archive export",
				slog.String("key", key),
				slog.String("error", err.Error()))
		} else {
			result.Key = key
			if s.opts.PresignedTTL > 0 {
				if u, err := s.storage.GetPresignedURL(ctx, key, s.opts.PresignedTTL); err != nil {
					s.logger.WarnContext(ctx, "failed to presign export",
						slog.String("key", key),
						slog.String("error", err.Error()))
				} else {
					result.URL = u
				}
			}
		}
	}

	s.logger.InfoContext(ctx, "inventory exported",
		slog.Int("rows", result.Rows),
		slog.String("category", string(q.Category)))

	return result, nil
}

// Summary returns stock levels per category plus totals.
func (s *InventoryService) Summary(ctx context.Context) (*domain.InventorySummary, error) {
	fetch := func() (interface{}, error) {
		rows, err := s.repo.Summary(ctx)
		if err != nil {
			return nil, err
		}
		return domain.NewInventorySummary(rows, s.now().UTC()), nil
	}

	if s.cache == nil || s.opts.SummaryTTL <= 0 {
		summary, err := fetch()
		if err != nil {
			return nil, fmt.Errorf("failed to summarize inventory: %w", err)
		}
		return summary.(*domain.InventorySummary), nil
	}

	var summary domain.InventorySummary
	if err := s.cache.GetOrSet(ctx, SummaryKey(), &summary, fetch, s.opts.SummaryTTL); err != nil {
		return nil, fmt.Errorf("failed to summarize inventory: %w", err)
	}
	return &summary, nil
}

// InventoryPageKey is the cache key of one listing page. Every query field
// takes part so distinct pages never share an entry.
func InventoryPageKey(q domain.InventoryQuery) string {
	return ports.BuildKey(ports.PrefixInventory, "list",
		strconv.Itoa(q.Page),
		strconv.Itoa(q.PageSize),
		string(q.Category),
		string(q.SortBy),
		string(q.SortOrder),
		url.QueryEscape(q.SearchTerm()),
	)
}

// SummaryKey is the cache key of the dashboard summary.
func SummaryKey() string {
	return ports.BuildKey(ports.PrefixDashboard, "summary")
}

// invalidateInventory drops cached listing pages and the dashboard summary.
// Failures are logged; stale entries expire with their TTL.
func invalidateInventory(ctx context.Context, cache ports.CacheRepository, logger *slog.Logger) {
	if cache == nil {
		return
	}
	if err := cache.DeletePattern(ctx, ports.BuildKey(ports.PrefixInventory, "*")); err != nil {
		logger.WarnContext(ctx, "failed to invalidate inventory pages",
			slog.String("error", err.Error()))
	}
	if err := cache.Delete(ctx, SummaryKey()); err != nil {
		logger.WarnContext(ctx, "failed to invalidate dashboard summary",
			slog.String("error", err.Error()))
	}
}
