package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order. The upstream platform
// encodes statuses as lowercase strings; comparisons are done
// case-insensitively because mixed-case values have been observed from
// older deployments.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Is reports whether s and other name the same status, ignoring case.
func (s OrderStatus) Is(other OrderStatus) bool {
	return strings.EqualFold(string(s), string(other))
}

// Active reports whether the order still belongs on the kitchen board.
func (s OrderStatus) Active() bool {
	return s.Is(StatusPending) || s.Is(StatusPreparing)
}

// OrderType distinguishes dine-in from takeaway orders. It is chosen
// once per kiosk session.
type OrderType string

const (
	OrderTypeDineIn   OrderType = "DINE_IN"
	OrderTypeTakeaway OrderType = "TAKEAWAY"
)

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool {
	return t == OrderTypeDineIn || t == OrderTypeTakeaway
}

// PaymentMethod is the payment option selected at checkout.
type PaymentMethod string

const (
	PaymentCard       PaymentMethod = "CARD"
	PaymentUPI        PaymentMethod = "UPI"
	PaymentNetbanking PaymentMethod = "NETBANKING"
	PaymentCash       PaymentMethod = "CASH"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentUPI, PaymentNetbanking, PaymentCash:
		return true
	}
	return false
}

// Order is an order as read back from the upstream platform. The
// gateway never creates or deletes these directly; it only transitions
// status through the kitchen board.
type Order struct {
	ID            int64           `json:"id"`
	OrderNumber   string          `json:"order_number"`
	Status        OrderStatus     `json:"status"`
	OrderType     OrderType       `json:"order_type,omitempty"`
	PaymentStatus string          `json:"payment_status,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []OrderItem     `json:"items"`
}

// OrderItem is a line snapshot within a placed order.
type OrderItem struct {
	ID                  int64            `json:"id"`
	MenuItemID          int64            `json:"menu_item_id"`
	Quantity            int              `json:"quantity"`
	UnitPrice           decimal.Decimal  `json:"unit_price"`
	Subtotal            decimal.Decimal  `json:"subtotal"`
	SpecialInstructions string           `json:"special_instructions,omitempty"`
	MenuItem            *OrderItemDetail `json:"menu_item,omitempty"`
}

// OrderItemDetail carries the denormalized menu item fields the kitchen
// board needs for display.
type OrderItemDetail struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// OrderCreate is the checkout submission payload.
type OrderCreate struct {
	OrderType     OrderType         `json:"order_type"`
	PaymentMethod PaymentMethod     `json:"payment_method"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	Items         []OrderItemCreate `json:"items"`
}

// OrderItemCreate is one line of a checkout submission. UnitPrice is
// recomputed from the current item at submission time, never reused from
// an earlier cart read.
type OrderItemCreate struct {
	MenuItemID int64           `json:"menu_item_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// OrderConfirmation is the upstream response to a successful checkout.
type OrderConfirmation struct {
	ID          int64  `json:"id"`
	OrderNumber string `json:"order_number"`
	Message     string `json:"message,omitempty"`
}
