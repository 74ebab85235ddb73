package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ammerola/inventory-dashboard/internal/core/domain"
)

// errorResponse is the body of every 4xx/5xx JSON reply.
type errorResponse struct {
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// dataResponse wraps catalog payloads.
type dataResponse struct {
	Data interface{} `json:"data"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func respondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	respondJSON(w, logger, status, errorResponse{Error: message})
}

func respondValidation(w http.ResponseWriter, logger *slog.Logger, message string, ve *domain.ValidationError) {
	respondJSON(w, logger, http.StatusBadRequest, errorResponse{Error: message, Details: ve.Details})
}
