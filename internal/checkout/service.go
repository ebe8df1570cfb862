package checkout

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"kiosk-gateway/internal/cart"
	"kiosk-gateway/internal/models"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidPayment     = errors.New("unknown payment method")
	ErrSubmissionInFlight = errors.New("a submission is already in flight for this session")
)

// OrderPlacer submits a completed order draft to the platform.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req models.OrderCreate) (*models.OrderConfirmation, error)
}

// Service turns a session cart plus a payment choice into a single
// order-creation call. On success the cart is cleared; on failure it is
// left intact so the customer can retry without rebuilding it.
type Service struct {
	backend OrderPlacer
	log     *slog.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewService(backend OrderPlacer, log *slog.Logger) *Service {
	return &Service{
		backend:  backend,
		log:      log,
		inFlight: make(map[string]bool),
	}
}

// Submit places the order for the given session. Unit prices are
// re-derived from each line's current item at submission time, guarding
// against price drift between add-to-cart and checkout. A second submit
// for the same session is rejected while the first is pending.
func (s *Service) Submit(ctx context.Context, sessionID string, c *cart.Cart, payment models.PaymentMethod) (*models.OrderConfirmation, error) {
	if !payment.Valid() {
		return nil, ErrInvalidPayment
	}

	lines := c.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	if !s.begin(sessionID) {
		return nil, ErrSubmissionInFlight
	}
	defer s.end(sessionID)

	items := make([]models.OrderItemCreate, 0, len(lines))
	total := decimal.Zero
	for _, l := range lines {
		unitPrice := l.Item.DiscountedUnitPrice().Round(2)
		items = append(items, models.OrderItemCreate{
			MenuItemID: l.Item.ID,
			Quantity:   l.Quantity,
			UnitPrice:  unitPrice,
		})
		total = total.Add(unitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	req := models.OrderCreate{
		OrderType:     c.OrderType(),
		PaymentMethod: payment,
		TotalAmount:   total,
		Items:         items,
	}

	conf, err := s.backend.CreateOrder(ctx, req)
	if err != nil {
		s.log.Error("order submission failed", "session", sessionID, "error", err)
		return nil, err
	}

	c.Clear()
	s.log.Info("order placed",
		"session", sessionID,
		"order_number", conf.OrderNumber,
		"items", len(items),
		"total", total.StringFixed(2),
	)
	return conf, nil
}

func (s *Service) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[sessionID] {
		return false
	}
	s.inFlight[sessionID] = true
	return true
}

func (s *Service) end(sessionID string) {
	s.mu.Lock()
	delete(s.inFlight, sessionID)
	s.mu.Unlock()
}
