package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"kiosk-gateway/internal/cart"
	"kiosk-gateway/internal/models"
)

type fakePlacer struct {
	mu   sync.Mutex
	req  *models.OrderCreate
	err  error
	gate chan struct{} // when set, CreateOrder blocks until closed
}

func (f *fakePlacer) CreateOrder(ctx context.Context, req models.OrderCreate) (*models.OrderConfirmation, error) {
	f.mu.Lock()
	f.req = &req
	gate := f.gate
	err := f.err
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return &models.OrderConfirmation{ID: 42, OrderNumber: "A1B2C3"}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)}))
}

func cartWith(items ...models.MenuItem) *cart.Cart {
	c := cart.New()
	for _, item := range items {
		c.Add(item)
	}
	return c
}

func menuItem(id int64, price, discount string) models.MenuItem {
	d := decimal.Zero
	if discount != "" {
		d = decimal.RequireFromString(discount)
	}
	return models.MenuItem{
		ID:                 id,
		Name:               "item",
		Price:              decimal.RequireFromString(price),
		DiscountPercentage: d,
		IsAvailable:        true,
	}
}

func TestSubmit_Success(t *testing.T) {
	placer := &fakePlacer{}
	svc := NewService(placer, testLogger())

	c := cartWith(menuItem(7, "10", "10"))
	c.Add(menuItem(7, "10", "10")) // quantity 2
	c.SetOrderType(models.OrderTypeTakeaway)

	conf, err := svc.Submit(context.Background(), "sess-1", c, models.PaymentCard)
	if err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}

	if conf.OrderNumber != "A1B2C3" {
		t.Errorf("expected order number A1B2C3, got %s", conf.OrderNumber)
	}

	req := placer.req
	if req == nil {
		t.Fatal("expected a CreateOrder request")
	}
	if req.OrderType != models.OrderTypeTakeaway {
		t.Errorf("expected TAKEAWAY, got %s", req.OrderType)
	}
	if req.PaymentMethod != models.PaymentCard {
		t.Errorf("expected CARD, got %s", req.PaymentMethod)
	}
	if len(req.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(req.Items))
	}
	// 10 with a 10% discount is submitted as 9.00, re-derived at submission time.
	if req.Items[0].UnitPrice.StringFixed(2) != "9.00" {
		t.Errorf("expected unit price 9.00, got %s", req.Items[0].UnitPrice.StringFixed(2))
	}
	if req.Items[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", req.Items[0].Quantity)
	}
	if !req.TotalAmount.Equal(decimal.RequireFromString("18")) {
		t.Errorf("expected total 18, got %s", req.TotalAmount)
	}

	// Success clears the cart and resets the session order type.
	if c.TotalItems() != 0 {
		t.Errorf("expected cleared cart, got %d items", c.TotalItems())
	}
	if c.OrderType() != models.OrderTypeDineIn {
		t.Errorf("expected order type reset, got %s", c.OrderType())
	}
}

func TestSubmit_FailureLeavesCartIntact(t *testing.T) {
	placer := &fakePlacer{err: errors.New("upstream down")}
	svc := NewService(placer, testLogger())

	c := cartWith(menuItem(1, "10", ""))

	if _, err := svc.Submit(context.Background(), "sess-1", c, models.PaymentCash); err == nil {
		t.Fatal("expected submit error")
	}

	if c.TotalItems() != 1 {
		t.Errorf("expected cart kept for retry, got %d items", c.TotalItems())
	}

	// The in-flight flag is released, so a retry goes through.
	placer.mu.Lock()
	placer.err = nil
	placer.mu.Unlock()

	if _, err := svc.Submit(context.Background(), "sess-1", c, models.PaymentCash); err != nil {
		t.Errorf("retry failed: %v", err)
	}
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cart    *cart.Cart
		payment models.PaymentMethod
		wantErr error
	}{
		{"empty cart", cart.New(), models.PaymentCard, ErrEmptyCart},
		{"unknown payment method", cartWith(menuItem(1, "10", "")), "BITCOIN", ErrInvalidPayment},
		{"empty payment method", cartWith(menuItem(1, "10", "")), "", ErrInvalidPayment},
	}

	placer := &fakePlacer{}
	svc := NewService(placer, testLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), "sess-1", tt.cart, tt.payment)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Submit() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubmit_DoubleSubmitRejected(t *testing.T) {
	gate := make(chan struct{})
	placer := &fakePlacer{gate: gate}
	svc := NewService(placer, testLogger())

	c := cartWith(menuItem(1, "10", ""))

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := svc.Submit(context.Background(), "sess-1", c, models.PaymentCard)
		done <- err
	}()
	<-started

	// Wait until the first submission holds the in-flight flag.
	for {
		placer.mu.Lock()
		inFlight := placer.req != nil
		placer.mu.Unlock()
		if inFlight {
			break
		}
	}

	if _, err := svc.Submit(context.Background(), "sess-1", c, models.PaymentCard); !errors.Is(err, ErrSubmissionInFlight) {
		t.Errorf("expected ErrSubmissionInFlight, got %v", err)
	}

	close(gate)
	if err := <-done; err != nil {
		t.Errorf("first submission failed: %v", err)
	}
}
