package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"kiosk-gateway/internal/models"
)

// Catalog is the read surface the kiosk renders the menu from.
type Catalog interface {
	Items(ctx context.Context) ([]models.MenuItem, error)
	ItemByID(ctx context.Context, id int64) (*models.MenuItem, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

// MenuHandler serves the kiosk menu reads.
type MenuHandler struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(catalog Catalog, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ListItems handles GET /api/menu/items
func (h *MenuHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Items(r.Context())
	if err != nil {
		h.logger.Error("failed to load menu items", "error", err)
		WriteUpstreamError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, items, h.logger)
}

// ListCategories handles GET /api/menu/categories
func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.logger.Error("failed to load categories", "error", err)
		WriteUpstreamError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, categories, h.logger)
}
