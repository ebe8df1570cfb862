package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"kiosk-gateway/internal/models"
)

type fakeSource struct {
	mu         sync.Mutex
	items      []models.MenuItem
	categories []models.Category
	err        error
	calls      int
}

func (f *fakeSource) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeSource) Categories(ctx context.Context) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)}))
}

func seedSource() *fakeSource {
	return &fakeSource{
		items: []models.MenuItem{
			{ID: 1, Name: "Margherita Pizza", Price: decimal.RequireFromString("14.99"), IsAvailable: true},
			{ID: 2, Name: "Seasonal Special", Price: decimal.RequireFromString("9.99"), IsAvailable: false},
		},
		categories: []models.Category{
			{ID: 1, Name: "Pizza", IsActive: true},
		},
	}
}

func TestCache_ServesWithinTTLWithoutRefetch(t *testing.T) {
	source := seedSource()
	cache := NewCache(source, time.Hour, testLogger())

	for i := 0; i < 3; i++ {
		items, err := cache.Items(context.Background())
		if err != nil {
			t.Fatalf("Items() unexpected error: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
	}

	if source.callCount() != 1 {
		t.Errorf("expected a single upstream fetch, got %d", source.callCount())
	}
}

func TestCache_RefreshesWhenStale(t *testing.T) {
	source := seedSource()
	cache := NewCache(source, time.Nanosecond, testLogger())

	if _, err := cache.Items(context.Background()); err != nil {
		t.Fatalf("Items() unexpected error: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, err := cache.Items(context.Background()); err != nil {
		t.Fatalf("Items() unexpected error: %v", err)
	}

	if source.callCount() != 2 {
		t.Errorf("expected 2 upstream fetches, got %d", source.callCount())
	}
}

func TestCache_ServesStaleOnRefreshFailure(t *testing.T) {
	source := seedSource()
	cache := NewCache(source, time.Nanosecond, testLogger())

	if _, err := cache.Items(context.Background()); err != nil {
		t.Fatalf("Items() unexpected error: %v", err)
	}

	source.mu.Lock()
	source.err = errors.New("connection refused")
	source.mu.Unlock()
	time.Sleep(time.Millisecond)

	items, err := cache.Items(context.Background())
	if err != nil {
		t.Fatalf("expected stale data, got error: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 stale items, got %d", len(items))
	}
}

func TestCache_ErrorWhenNeverLoaded(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}
	cache := NewCache(source, time.Hour, testLogger())

	if _, err := cache.Items(context.Background()); err == nil {
		t.Error("expected error when no data has ever loaded")
	}
}

func TestCache_ItemByID(t *testing.T) {
	source := seedSource()
	cache := NewCache(source, time.Hour, testLogger())

	tests := []struct {
		name    string
		id      int64
		wantErr error
	}{
		{"available item", 1, nil},
		{"unknown item", 99, ErrItemNotFound},
		{"unavailable item", 2, ErrItemUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := cache.ItemByID(context.Background(), tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ItemByID() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && item.ID != tt.id {
				t.Errorf("expected item %d, got %d", tt.id, item.ID)
			}
		})
	}
}

func TestCache_Categories(t *testing.T) {
	source := seedSource()
	cache := NewCache(source, time.Hour, testLogger())

	categories, err := cache.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories() unexpected error: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Pizza" {
		t.Errorf("unexpected categories: %+v", categories)
	}
}
