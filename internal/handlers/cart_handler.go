package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"kiosk-gateway/internal/cart"
	"kiosk-gateway/internal/catalog"
	"kiosk-gateway/internal/middleware"
	"kiosk-gateway/internal/models"
)

// CartHandler exposes the session cart operations.
type CartHandler struct {
	store   *cart.Store
	catalog Catalog
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store *cart.Store, catalog Catalog, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

type cartLineView struct {
	Item     models.MenuItem `json:"item"`
	Quantity int             `json:"quantity"`
	Subtotal string          `json:"subtotal"`
}

type cartView struct {
	Lines       []cartLineView   `json:"lines"`
	TotalItems  int              `json:"total_items"`
	TotalAmount string           `json:"total_amount"`
	OrderType   models.OrderType `json:"order_type"`
}

// Currency rounding happens here, at render time only; the cart itself
// carries exact values.
func viewOf(c *cart.Cart) cartView {
	lines := c.Lines()
	view := cartView{
		Lines:       make([]cartLineView, 0, len(lines)),
		TotalItems:  c.TotalItems(),
		TotalAmount: c.TotalAmount().StringFixed(2),
		OrderType:   c.OrderType(),
	}
	for _, l := range lines {
		view.Lines = append(view.Lines, cartLineView{
			Item:     l.Item,
			Quantity: l.Quantity,
			Subtotal: l.Subtotal().StringFixed(2),
		})
	}
	return view
}

func (h *CartHandler) sessionCart(r *http.Request) (string, *cart.Cart) {
	id := middleware.SessionID(r.Context())
	return id, h.store.Get(id)
}

// Get handles GET /api/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, c := h.sessionCart(r)
	WriteJSON(w, http.StatusOK, viewOf(c), h.logger)
}

type addItemRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	item, err := h.catalog.ItemByID(r.Context(), req.MenuItemID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrItemNotFound):
			WriteError(w, http.StatusNotFound, "Menu item not found", h.logger)
		case errors.Is(err, catalog.ErrItemUnavailable):
			WriteError(w, http.StatusBadRequest, "Menu item is not available", h.logger)
		default:
			h.logger.Error("failed to resolve menu item", "menu_item_id", req.MenuItemID, "error", err)
			WriteUpstreamError(w, err, h.logger)
		}
		return
	}

	_, c := h.sessionCart(r)
	c.Add(*item)
	WriteJSON(w, http.StatusOK, viewOf(c), h.logger)
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PUT /api/cart/items/{itemID}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid item ID", h.logger)
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	_, c := h.sessionCart(r)
	c.SetQuantity(itemID, req.Quantity)
	WriteJSON(w, http.StatusOK, viewOf(c), h.logger)
}

// RemoveItem handles DELETE /api/cart/items/{itemID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid item ID", h.logger)
		return
	}

	_, c := h.sessionCart(r)
	c.Remove(itemID)
	WriteJSON(w, http.StatusOK, viewOf(c), h.logger)
}

// Clear handles POST /api/cart/clear
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	_, c := h.sessionCart(r)
	c.Clear()
	WriteJSON(w, http.StatusOK, viewOf(c), h.logger)
}

type orderTypeRequest struct {
	OrderType models.OrderType `json:"order_type"`
}

// SetOrderType handles PUT /api/cart/order-type
func (h *CartHandler) SetOrderType(w http.ResponseWriter, r *http.Request) {
	var req orderTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	if !req.OrderType.Valid() {
		WriteError(w, http.StatusBadRequest, "Order type must be DINE_IN or TAKEAWAY", h.logger)
		return
	}

	_, c := h.sessionCart(r)
	c.SetOrderType(req.OrderType)
	WriteJSON(w, http.StatusOK, viewOf(c), h.logger)
}
