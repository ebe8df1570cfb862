package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kiosk-gateway/internal/models"
)

// Client is a typed HTTP client for the restaurant platform API. All
// persistent state (menu, orders, branding) lives behind it; the
// gateways hold only session and presentation state.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given API base URL, e.g.
// "http://localhost:8000/api/v1".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx response from the platform, carrying the
// server-side message when one was provided.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token. The platform expects
// a form-encoded body on this endpoint only.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	values := url.Values{}
	values.Set("username", username)
	values.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", strings.NewReader(values.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out loginResponse
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("login response missing access token")
	}
	return out.AccessToken, nil
}

// MenuItems returns the available menu items (public endpoint).
func (c *Client) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := c.doJSON(ctx, http.MethodGet, "/menu/items", "", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Categories returns the active menu categories (public endpoint).
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.doJSON(ctx, http.MethodGet, "/menu/categories", "", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateMenuItem creates a menu item (admin endpoint).
func (c *Client) CreateMenuItem(ctx context.Context, token string, req models.MenuItemCreate) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := c.doJSON(ctx, http.MethodPost, "/admin/menu/items", token, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateMenuItem applies a partial update to a menu item (admin endpoint).
func (c *Client) UpdateMenuItem(ctx context.Context, token string, itemID int64, req models.MenuItemUpdate) (*models.MenuItem, error) {
	var item models.MenuItem
	path := fmt.Sprintf("/admin/menu/items/%d", itemID)
	if err := c.doJSON(ctx, http.MethodPut, path, token, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteMenuItem deletes a menu item (admin endpoint).
func (c *Client) DeleteMenuItem(ctx context.Context, token string, itemID int64) error {
	path := fmt.Sprintf("/admin/menu/items/%d", itemID)
	return c.doJSON(ctx, http.MethodDelete, path, token, nil, nil)
}

// UploadResult describes a stored image.
type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// UploadImage streams an image to the platform and returns its relative
// URL for use in menu items and branding.
func (c *Client) UploadImage(ctx context.Context, token, filename string, file io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart field: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload/image", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	var out UploadResult
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BrandSettings returns the tenant branding (public endpoint).
func (c *Client) BrandSettings(ctx context.Context) (*models.BrandConfig, error) {
	var cfg models.BrandConfig
	if err := c.doJSON(ctx, http.MethodGet, "/brand/settings", "", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveBrandSettings creates or updates the tenant branding (admin endpoint).
func (c *Client) SaveBrandSettings(ctx context.Context, token string, cfg models.BrandConfig) (*models.BrandConfig, error) {
	var saved models.BrandConfig
	if err := c.doJSON(ctx, http.MethodPost, "/brand/settings", token, cfg, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// ListOrders returns the most recent orders, newest first (admin endpoint).
func (c *Client) ListOrders(ctx context.Context, token string, limit int) ([]models.Order, error) {
	var orders []models.Order
	path := fmt.Sprintf("/admin/orders?limit=%d", limit)
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type statusUpdate struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateOrderStatus transitions an order to the given status (admin endpoint).
func (c *Client) UpdateOrderStatus(ctx context.Context, token string, orderID int64, status models.OrderStatus) error {
	path := fmt.Sprintf("/admin/orders/%d/status", orderID)
	return c.doJSON(ctx, http.MethodPatch, path, token, statusUpdate{Status: status}, nil)
}

// CreateOrder submits a kiosk order (public endpoint).
func (c *Client) CreateOrder(ctx context.Context, req models.OrderCreate) (*models.OrderConfirmation, error) {
	var out models.OrderConfirmation
	if err := c.doJSON(ctx, http.MethodPost, "/orders", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// doJSON issues a JSON request against the API and decodes the response
// into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req, out)
}

// errorBody matches both the platform's {"detail": ...} errors and the
// plain {"error": ...} shape used by older deployments.
type errorBody struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read upstream response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var eb errorBody
		if err := json.Unmarshal(data, &eb); err == nil {
			if eb.Detail != "" {
				apiErr.Message = eb.Detail
			} else if eb.Error != "" {
				apiErr.Message = eb.Error
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode upstream response: %w", err)
	}
	return nil
}
