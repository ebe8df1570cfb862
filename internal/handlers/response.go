package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"kiosk-gateway/internal/upstream"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

// WriteUpstreamError maps a platform call failure onto the response:
// platform 4xx/5xx are passed through with their message, transport
// failures become a 502.
func WriteUpstreamError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		WriteError(w, apiErr.StatusCode, apiErr.Message, logger)
		return
	}
	WriteError(w, http.StatusBadGateway, "Restaurant platform is unavailable", logger)
}
