package brand

import (
	"context"
	"log/slog"
	"sync"

	"kiosk-gateway/internal/models"
)

// Fetcher reads tenant branding from the platform.
type Fetcher interface {
	BrandSettings(ctx context.Context) (*models.BrandConfig, error)
}

// Provider fetches tenant branding once at startup and serves the
// cached value to the component tree. A fetch failure falls back to the
// platform's default palette; Refresh re-fetches after an admin save.
type Provider struct {
	fetcher Fetcher
	log     *slog.Logger

	mu  sync.RWMutex
	cfg models.BrandConfig
}

func NewProvider(fetcher Fetcher, log *slog.Logger) *Provider {
	return &Provider{
		fetcher: fetcher,
		log:     log,
		cfg:     models.DefaultBrandConfig(),
	}
}

// Load fetches the branding and caches it. On failure the cached value
// (initially the defaults) is kept and the error returned for logging.
func (p *Provider) Load(ctx context.Context) error {
	cfg, err := p.fetcher.BrandSettings(ctx)
	if err != nil {
		p.log.Warn("brand settings unavailable, using current values", "error", err)
		return err
	}

	p.mu.Lock()
	p.cfg = withDefaults(*cfg)
	p.mu.Unlock()
	return nil
}

// Refresh is Load under its intent-revealing name, called after an
// admin updates the branding.
func (p *Provider) Refresh(ctx context.Context) error {
	return p.Load(ctx)
}

// Config returns the cached branding.
func (p *Provider) Config() models.BrandConfig {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg
}

// withDefaults fills empty fields from the default palette so the front
// ends always receive a usable theme.
func withDefaults(cfg models.BrandConfig) models.BrandConfig {
	def := models.DefaultBrandConfig()
	if cfg.PrimaryColor == "" {
		cfg.PrimaryColor = def.PrimaryColor
	}
	if cfg.SecondaryColor == "" {
		cfg.SecondaryColor = def.SecondaryColor
	}
	if cfg.FontFamily == "" {
		cfg.FontFamily = def.FontFamily
	}
	return cfg
}
