package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"kiosk-gateway/internal/kitchen"
	"kiosk-gateway/internal/models"
)

type fakeBoardBackend struct {
	orders    []models.Order
	updateErr error
}

func (f *fakeBoardBackend) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	return f.orders, nil
}

func (f *fakeBoardBackend) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	return f.updateErr
}

func newKitchenRouter(t *testing.T, backend *fakeBoardBackend) *chi.Mux {
	t.Helper()

	board := kitchen.NewBoard(backend, kitchen.Config{
		PollInterval: 10 * time.Second,
		OrderLimit:   50,
		LateAfter:    15 * time.Minute,
	}, testLogger())
	if err := board.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() unexpected error: %v", err)
	}
	handler := NewKitchenHandler(board, testLogger())

	r := chi.NewRouter()
	r.Get("/api/kitchen/orders", handler.ListOrders)
	r.Post("/api/kitchen/orders/{orderID}/advance", handler.AdvanceOrder)
	return r
}

func TestKitchenListOrders(t *testing.T) {
	backend := &fakeBoardBackend{orders: []models.Order{
		{ID: 1, OrderNumber: "A1B2C3", Status: models.StatusPending, CreatedAt: time.Now().Add(-20 * time.Minute)},
		{ID: 2, OrderNumber: "D4E5F6", Status: models.StatusCompleted, CreatedAt: time.Now()},
	}}
	router := newKitchenRouter(t, backend)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/kitchen/orders", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var snap struct {
		Orders []struct {
			ID             int64 `json:"id"`
			ElapsedMinutes int   `json:"elapsed_minutes"`
			Late           bool  `json:"late"`
		} `json:"orders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	if len(snap.Orders) != 1 {
		t.Fatalf("expected only the active order, got %d", len(snap.Orders))
	}
	if !snap.Orders[0].Late {
		t.Error("expected a 20 minute old pending order to be late")
	}
}

func TestKitchenAdvanceOrder(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
	}{
		{"valid transition", "/api/kitchen/orders/1/advance", `{"from":"pending","to":"preparing"}`, http.StatusOK},
		{"unknown order", "/api/kitchen/orders/99/advance", `{"from":"pending","to":"preparing"}`, http.StatusNotFound},
		{"skipping a step", "/api/kitchen/orders/1/advance", `{"from":"pending","to":"ready"}`, http.StatusConflict},
		{"bad order id", "/api/kitchen/orders/abc/advance", `{"from":"pending","to":"preparing"}`, http.StatusBadRequest},
		{"malformed body", "/api/kitchen/orders/1/advance", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBoardBackend{orders: []models.Order{
				{ID: 1, Status: models.StatusPending, CreatedAt: time.Now()},
			}}
			router := newKitchenRouter(t, backend)

			req := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}
