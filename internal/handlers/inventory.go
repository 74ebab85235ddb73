// internal/handlers/inventory.go
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ammerola/inventory-dashboard/internal/core/domain"
	"github.com/ammerola/inventory-dashboard/internal/core/ports"
)

// InventoryHandler handles inventory-related HTTP requests
type InventoryHandler struct {
	service ports.InventoryService
	logger  *slog.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service ports.InventoryService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "inventory")),
	}
}

// ListInventory handles GET /api/v1/inventory
func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q, err := domain.ParseInventoryQuery(r.URL.Query())
	if err != nil {
		if ve, ok := domain.AsValidation(err); ok {
			respondValidation(w, h.logger, "Invalid query parameters", ve)
			return
		}
		respondError(w, h.logger, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	page, err := h.service.List(ctx, q)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to fetch inventory",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch inventory")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, page)
}

// CreateInventory handles POST /api/v1/inventory, which is not supported.
func (h *InventoryHandler) CreateInventory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodGet)
	respondError(w, h.logger, http.StatusMethodNotAllowed, "POST method not implemented for inventory endpoint")
}

// ExportInventory handles GET /api/v1/inventory/export
func (h *InventoryHandler) ExportInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	values := r.URL.Query()
	values.Del(domain.ParamPage)
	values.Del(domain.ParamPageSize)

	q, err := domain.ParseInventoryQuery(values)
	if err != nil {
		if ve, ok := domain.AsValidation(err); ok {
			respondValidation(w, h.logger, "Invalid query parameters", ve)
			return
		}
		respondError(w, h.logger, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := h.service.Export(ctx, q)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to export inventory",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to export inventory")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("X-Export-Rows", strconv.Itoa(result.Rows))
	if result.Key != "" {
		w.Header().Set("X-Export-Key", result.Key)
	}
	if result.URL != "" {
		w.Header().Set("X-Export-URL", result.URL)
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		h.logger.ErrorContext(ctx, "failed to write export",
			slog.String("error", err.Error()))
	}
}
