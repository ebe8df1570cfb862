package upstream

import (
	"context"
	"errors"
	"net/http"

	"kiosk-gateway/internal/models"
)

// AdminBackend binds the client to a token source so background
// components can make admin calls without holding credentials. An
// expired token is refreshed transparently with a single retry.
type AdminBackend struct {
	client *Client
	tokens TokenSource
}

func NewAdminBackend(client *Client, tokens TokenSource) *AdminBackend {
	return &AdminBackend{client: client, tokens: tokens}
}

// ListOrders returns the most recent orders for the tenant.
func (b *AdminBackend) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := b.withToken(ctx, func(token string) error {
		var err error
		orders, err = b.client.ListOrders(ctx, token, limit)
		return err
	})
	return orders, err
}

// UpdateOrderStatus transitions an order's status upstream.
func (b *AdminBackend) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	return b.withToken(ctx, func(token string) error {
		return b.client.UpdateOrderStatus(ctx, token, orderID, status)
	})
}

func (b *AdminBackend) withToken(ctx context.Context, call func(token string) error) error {
	token, err := b.tokens.Token(ctx)
	if err != nil {
		return err
	}

	err = call(token)
	if isUnauthorized(err) {
		b.tokens.Invalidate()
		token, err = b.tokens.Token(ctx)
		if err != nil {
			return err
		}
		return call(token)
	}
	return err
}

func isUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
