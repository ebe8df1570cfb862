package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"kiosk-gateway/internal/models"
)

var (
	ErrItemNotFound    = errors.New("menu item not found")
	ErrItemUnavailable = errors.New("menu item is not available")
)

// Source is the upstream read surface the cache refreshes from.
type Source interface {
	MenuItems(ctx context.Context) ([]models.MenuItem, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

// Cache is a read-through cache of the menu catalog. Reads within the
// TTL are served locally; when a refresh fails and stale data exists,
// the stale data is served so the kiosk keeps working through upstream
// blips.
type Cache struct {
	source Source
	ttl    time.Duration
	log    *slog.Logger

	mu         sync.Mutex
	items      []models.MenuItem
	byID       map[int64]models.MenuItem
	categories []models.Category
	fetchedAt  time.Time
}

func NewCache(source Source, ttl time.Duration, log *slog.Logger) *Cache {
	return &Cache{
		source: source,
		ttl:    ttl,
		log:    log,
		byID:   make(map[int64]models.MenuItem),
	}
}

// Items returns the cached menu items, refreshing from upstream when
// the cache is stale.
func (c *Cache) Items(ctx context.Context) ([]models.MenuItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.refreshLocked(ctx); err != nil {
		return nil, err
	}
	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out, nil
}

// ItemByID returns a single available menu item from the catalog.
func (c *Cache) ItemByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.refreshLocked(ctx); err != nil {
		return nil, err
	}
	item, ok := c.byID[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	if !item.IsAvailable {
		return nil, ErrItemUnavailable
	}
	return &item, nil
}

// Categories returns the cached categories, refreshing when stale.
func (c *Cache) Categories(ctx context.Context) ([]models.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.refreshLocked(ctx); err != nil {
		return nil, err
	}
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out, nil
}

func (c *Cache) refreshLocked(ctx context.Context) error {
	if !c.fetchedAt.IsZero() && time.Since(c.fetchedAt) < c.ttl {
		return nil
	}

	items, err := c.source.MenuItems(ctx)
	if err == nil {
		var categories []models.Category
		categories, err = c.source.Categories(ctx)
		if err == nil {
			c.items = items
			c.categories = categories
			c.byID = make(map[int64]models.MenuItem, len(items))
			for _, item := range items {
				c.byID[item.ID] = item
			}
			c.fetchedAt = time.Now()
			return nil
		}
	}

	// Stale-but-available: keep serving the previous catalog.
	if !c.fetchedAt.IsZero() {
		c.log.Warn("catalog refresh failed, serving stale data", "error", err, "age", time.Since(c.fetchedAt).String())
		return nil
	}
	return err
}
