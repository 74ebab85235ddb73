package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/ammerola/inventory-dashboard/internal/core/domain"
	"github.com/ammerola/inventory-dashboard/internal/core/ports"
)

const maxProductBodyBytes = 1 << 20

// ProductHandler serves the product catalog.
type ProductHandler struct {
	service ports.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service ports.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "product")),
	}
}

// ListProducts handles GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, ve := parseProductFilter(r)
	if err := ve.OrNil(); err != nil {
		respondValidation(w, h.logger, "Invalid query parameters", ve)
		return
	}

	products, err := h.service.List(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to fetch products",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, dataResponse{Data: products})
}

// CreateProduct handles POST /api/v1/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in domain.ProductInput
	if !h.decodeBody(w, r, &in) {
		return
	}

	p, err := h.service.Create(ctx, in)
	if err != nil {
		if ve, ok := domain.AsValidation(err); ok {
			respondValidation(w, h.logger, "Validation failed", ve)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create product",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to create product")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, dataResponse{Data: p})
}

// GetProduct handles GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	p, err := h.service.Get(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(w, h.logger, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to fetch product",
			slog.String("product_id", id.String()),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, dataResponse{Data: p})
}

// UpdateProduct handles PUT /api/v1/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	var in domain.ProductInput
	if !h.decodeBody(w, r, &in) {
		return
	}

	p, err := h.service.Update(ctx, id, in)
	if err != nil {
		if ve, ok := domain.AsValidation(err); ok {
			respondValidation(w, h.logger, "Validation failed", ve)
			return
		}
		if domain.IsNotFound(err) {
			respondError(w, h.logger, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to update product",
			slog.String("product_id", id.String()),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to update product")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, dataResponse{Data: p})
}

// DeleteProduct handles DELETE /api/v1/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			respondError(w, h.logger, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete product",
			slog.String("product_id", id.String()),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

// productID parses the {id} path value. A malformed id cannot match any
// product, so it is answered with 404.
func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusNotFound, "Product not found")
		return uuid.Nil, false
	}
	return id, true
}

func (h *ProductHandler) decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxProductBodyBytes))
	if err := dec.Decode(dest); err != nil {
		respondJSON(w, h.logger, http.StatusBadRequest, errorResponse{
			Error:   "Validation failed",
			Details: []domain.FieldError{{Field: "body", Message: "must be a valid JSON object"}},
		})
		return false
	}
	return true
}

func parseProductFilter(r *http.Request) (domain.ProductFilter, *domain.ValidationError) {
	var filter domain.ProductFilter
	ve := &domain.ValidationError{}
	values := r.URL.Query()

	if raw := values.Get("category"); raw != "" && raw != string(domain.CategoryAll) {
		c := domain.Category(raw)
		if !c.IsValid() {
			ve.Add("category", "must be one of: t-shirt, polo-shirt, hoodie, tote-bag")
		} else {
			filter.Category = &c
		}
	}

	for _, key := range []string{"limit", "offset"} {
		raw := values.Get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			ve.Add(key, "must be a non-negative integer")
			continue
		}
		if key == "limit" {
			filter.Limit = &n
		} else {
			filter.Offset = &n
		}
	}

	return filter, ve
}
