package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"kiosk-gateway/internal/middleware"
	"kiosk-gateway/internal/models"
)

// MenuWriter is the platform's admin menu surface. Calls carry the
// staff member's own bearer token.
type MenuWriter interface {
	CreateMenuItem(ctx context.Context, token string, req models.MenuItemCreate) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, token string, itemID int64, req models.MenuItemUpdate) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, token string, itemID int64) error
}

// AdminMenuHandler proxies menu CRUD to the platform.
type AdminMenuHandler struct {
	backend MenuWriter
	logger  *slog.Logger
}

// NewAdminMenuHandler creates a new admin menu handler
func NewAdminMenuHandler(backend MenuWriter, logger *slog.Logger) *AdminMenuHandler {
	return &AdminMenuHandler{
		backend: backend,
		logger:  logger,
	}
}

// CreateItem handles POST /api/menu/items
func (h *AdminMenuHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req models.MenuItemCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	if req.Name == "" {
		WriteError(w, http.StatusBadRequest, "Name is required", h.logger)
		return
	}
	if req.Price.IsNegative() {
		WriteError(w, http.StatusBadRequest, "Price must not be negative", h.logger)
		return
	}

	item, err := h.backend.CreateMenuItem(r.Context(), middleware.Token(r.Context()), req)
	if err != nil {
		h.logger.Error("failed to create menu item", "error", err)
		WriteUpstreamError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, item, h.logger)
	h.logger.Info("menu item created", "item_id", item.ID, "name", item.Name)
}

// UpdateItem handles PUT /api/menu/items/{itemID}
func (h *AdminMenuHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid item ID", h.logger)
		return
	}

	var req models.MenuItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	item, err := h.backend.UpdateMenuItem(r.Context(), middleware.Token(r.Context()), itemID, req)
	if err != nil {
		h.logger.Error("failed to update menu item", "item_id", itemID, "error", err)
		WriteUpstreamError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, item, h.logger)
}

// DeleteItem handles DELETE /api/menu/items/{itemID}
func (h *AdminMenuHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid item ID", h.logger)
		return
	}

	if err := h.backend.DeleteMenuItem(r.Context(), middleware.Token(r.Context()), itemID); err != nil {
		h.logger.Error("failed to delete menu item", "item_id", itemID, "error", err)
		WriteUpstreamError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "Menu item deleted"}, h.logger)
}
