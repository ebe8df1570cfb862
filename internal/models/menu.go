package models

import "github.com/shopspring/decimal"

// MenuItem represents a single item on the restaurant menu.
// Items are owned by the upstream platform; the gateway treats them
// as read-only snapshots.
type MenuItem struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	CategoryID         int64           `json:"category_id"`
	ImageURL           string          `json:"image_url,omitempty"`
	IsAvailable        bool            `json:"is_available"`
	DietaryTags        []string        `json:"dietary_tags,omitempty"`
}

// DiscountedUnitPrice returns the effective unit price with the item's
// discount applied. Rounding is left to the caller so totals stay exact
// until display or submission time.
func (m MenuItem) DiscountedUnitPrice() decimal.Decimal {
	if m.DiscountPercentage.IsZero() {
		return m.Price
	}
	factor := decimal.NewFromInt(1).Sub(m.DiscountPercentage.Div(decimal.NewFromInt(100)))
	return m.Price.Mul(factor)
}

// Category groups menu items for display.
type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

// MenuItemCreate is the payload for creating a menu item upstream.
type MenuItemCreate struct {
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	CategoryID         int64           `json:"category_id"`
	ImageURL           string          `json:"image_url,omitempty"`
	DietaryTags        []string        `json:"dietary_tags,omitempty"`
}

// MenuItemUpdate is the payload for a partial menu item update.
// Nil fields are left untouched upstream.
type MenuItemUpdate struct {
	Name               *string          `json:"name,omitempty"`
	Description        *string          `json:"description,omitempty"`
	Price              *decimal.Decimal `json:"price,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	CategoryID         *int64           `json:"category_id,omitempty"`
	ImageURL           *string          `json:"image_url,omitempty"`
	IsAvailable        *bool            `json:"is_available,omitempty"`
	DietaryTags        []string         `json:"dietary_tags,omitempty"`
}
