package handlers

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ammerola/inventory-dashboard/internal/core/ports"
)

// CronHandler serves scheduled maintenance endpoints.
type CronHandler struct {
	db     ports.Database
	secret string
	logger *slog.Logger
	now    func() time.Time
}

// NewCronHandler creates a cron handler guarded by secret. An empty secret
// rejects every call.
func NewCronHandler(db ports.Database, secret string, logger *slog.Logger) *CronHandler {
	return &CronHandler{
		db:     db,
		secret: secret,
		logger: logger.With(slog.String("handler", "cron")),
		now:    time.Now,
	}
}

// KeepAlive handles GET /api/v1/cron/keep-alive
func (h *CronHandler) KeepAlive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.authorized(r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stamp := h.now().UTC().Format(time.RFC3339)
	if err := h.db.Ping(ctx); err != nil {
		h.logger.ErrorContext(ctx, "keep-alive ping failed",
			slog.String("error", err.Error()))
		respondJSON(w, h.logger, http.StatusInternalServerError,
			messageResponse{Message: fmt.Sprintf("Database is unreachable -- %s", stamp)})
		return
	}

	h.logger.InfoContext(ctx, "keep-alive ping succeeded")
	respondJSON(w, h.logger, http.StatusOK,
		messageResponse{Message: fmt.Sprintf("Database is alive -- %s", stamp)})
}

func (h *CronHandler) authorized(r *http.Request) bool {
	if h.secret == "" {
		return false
	}
	want := []byte("Bearer " + h.secret)
	got := []byte(r.Header.Get("Authorization"))
	return subtle.ConstantTimeCompare(got, want) == 1
}
