package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"kiosk-gateway/internal/cart"
	"kiosk-gateway/internal/checkout"
	"kiosk-gateway/internal/middleware"
	"kiosk-gateway/internal/models"
)

// CheckoutHandler handles order submission from the kiosk.
type CheckoutHandler struct {
	service *checkout.Service
	store   *cart.Store
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(service *checkout.Service, store *cart.Store, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		store:   store,
		logger:  logger,
	}
}

type checkoutRequest struct {
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

// Submit handles POST /api/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	sessionID := middleware.SessionID(r.Context())
	c := h.store.Get(sessionID)

	conf, err := h.service.Submit(r.Context(), sessionID, c, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			WriteError(w, http.StatusBadRequest, "Cart is empty", h.logger)
		case errors.Is(err, checkout.ErrInvalidPayment):
			WriteError(w, http.StatusBadRequest, "Unknown payment method", h.logger)
		case errors.Is(err, checkout.ErrSubmissionInFlight):
			WriteError(w, http.StatusConflict, "Order submission already in progress", h.logger)
		default:
			// Cart stays intact so the customer can retry.
			WriteUpstreamError(w, err, h.logger)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, conf, h.logger)
}
