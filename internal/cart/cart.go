package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"kiosk-gateway/internal/models"
)

// Line is one cart entry: a menu item snapshot plus a quantity.
// Invariant: at most one line exists per item id and quantity is
// always at least 1.
type Line struct {
	Item     models.MenuItem `json:"item"`
	Quantity int             `json:"quantity"`
}

// Subtotal is the line's discounted price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Item.DiscountedUnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the in-progress order draft for a single kiosk session. It is
// the sole source of truth for the draft; totals are always derived from
// the lines, never stored. Safe for concurrent use.
type Cart struct {
	mu        sync.Mutex
	lines     []Line
	orderType models.OrderType
}

func New() *Cart {
	return &Cart{orderType: models.OrderTypeDineIn}
}

// Add inserts a new line with quantity 1, or increments the existing
// line for the same item id. There is no quantity ceiling.
func (c *Cart) Add(item models.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
}

// Remove deletes the line for itemID; it is a no-op when absent.
func (c *Cart) Remove(itemID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(itemID)
}

func (c *Cart) removeLocked(itemID int64) {
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the line's quantity; a quantity of zero or less
// removes the line. Unknown item ids are a no-op.
func (c *Cart) SetQuantity(itemID int64, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(itemID)
		return
	}
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart and resets the order type for a fresh session.
// Called after a successful checkout.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.orderType = models.OrderTypeDineIn
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalAmount is the sum of discounted line subtotals. The value is
// exact; rounding to currency precision happens only at display or
// submission time.
func (c *Cart) TotalAmount() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// OrderType returns the session's dine-in/takeaway choice.
func (c *Cart) OrderType() models.OrderType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orderType
}

// SetOrderType records the landing-page choice. Changing it does not
// touch existing lines.
func (c *Cart) SetOrderType(t models.OrderType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orderType = t
}
