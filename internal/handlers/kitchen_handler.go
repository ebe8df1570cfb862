package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"kiosk-gateway/internal/kitchen"
	"kiosk-gateway/internal/models"
)

// KitchenHandler exposes the kitchen status board.
type KitchenHandler struct {
	board  *kitchen.Board
	logger *slog.Logger
}

// NewKitchenHandler creates a new kitchen handler
func NewKitchenHandler(board *kitchen.Board, logger *slog.Logger) *KitchenHandler {
	return &KitchenHandler{
		board:  board,
		logger: logger,
	}
}

// ListOrders handles GET /api/kitchen/orders
func (h *KitchenHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.board.SnapshotAt(time.Now()), h.logger)
}

type advanceRequest struct {
	From models.OrderStatus `json:"from"`
	To   models.OrderStatus `json:"to"`
}

// AdvanceOrder handles POST /api/kitchen/orders/{orderID}/advance
func (h *KitchenHandler) AdvanceOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid order ID", h.logger)
		return
	}

	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if err := h.board.Advance(r.Context(), orderID, req.From, req.To); err != nil {
		switch {
		case errors.Is(err, kitchen.ErrOrderNotFound):
			WriteError(w, http.StatusNotFound, "Order not found on the board", h.logger)
		case errors.Is(err, kitchen.ErrInvalidTransition):
			WriteError(w, http.StatusConflict, "Status transition not allowed", h.logger)
		default:
			WriteUpstreamError(w, err, h.logger)
		}
		return
	}

	WriteJSON(w, http.StatusOK, h.board.SnapshotAt(time.Now()), h.logger)
}
