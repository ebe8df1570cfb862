package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"kiosk-gateway/internal/brand"
	"kiosk-gateway/internal/middleware"
	"kiosk-gateway/internal/models"
)

// BrandWriter is the platform's branding write surface.
type BrandWriter interface {
	SaveBrandSettings(ctx context.Context, token string, cfg models.BrandConfig) (*models.BrandConfig, error)
}

// BrandHandler serves the cached tenant branding and, on the admin
// gateway, forwards updates to the platform.
type BrandHandler struct {
	provider *brand.Provider
	backend  BrandWriter
	logger   *slog.Logger
}

// NewBrandHandler creates a new brand handler. backend may be nil on
// the kiosk gateway, which only reads.
func NewBrandHandler(provider *brand.Provider, backend BrandWriter, logger *slog.Logger) *BrandHandler {
	return &BrandHandler{
		provider: provider,
		backend:  backend,
		logger:   logger,
	}
}

// Get handles GET /api/brand/settings (and GET /api/brand on the kiosk)
func (h *BrandHandler) Get(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.provider.Config(), h.logger)
}

// Save handles POST /api/brand/settings
func (h *BrandHandler) Save(w http.ResponseWriter, r *http.Request) {
	var cfg models.BrandConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	saved, err := h.backend.SaveBrandSettings(r.Context(), middleware.Token(r.Context()), cfg)
	if err != nil {
		h.logger.Error("failed to save brand settings", "error", err)
		WriteUpstreamError(w, err, h.logger)
		return
	}

	// Pick up the new branding immediately instead of waiting for a restart.
	if err := h.provider.Refresh(r.Context()); err != nil {
		h.logger.Warn("brand cache refresh failed after save", "error", err)
	}

	WriteJSON(w, http.StatusCreated, saved, h.logger)
}
