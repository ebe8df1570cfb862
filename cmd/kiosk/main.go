package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"kiosk-gateway/internal/brand"
	"kiosk-gateway/internal/cart"
	"kiosk-gateway/internal/catalog"
	"kiosk-gateway/internal/checkout"
	"kiosk-gateway/internal/config"
	"kiosk-gateway/internal/handlers"
	"kiosk-gateway/internal/middleware"
	"kiosk-gateway/internal/upstream"
	"kiosk-gateway/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting kiosk gateway",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"upstream", cfg.Upstream.BaseURL,
	)

	// Background tasks stop when the process shuts down
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Upstream platform client and derived components
	client := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	menuCache := catalog.NewCache(client, cfg.Menu.CacheTTL, log)

	cartStore := cart.NewStore(cfg.Cart.SessionTTL)
	go cartStore.Run(ctx, cfg.Cart.SweepInterval)

	brandProvider := brand.NewProvider(client, log)
	if err := brandProvider.Load(ctx); err != nil {
		log.Warn("starting with default branding", "error", err)
	}

	checkoutService := checkout.NewService(client, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler("kiosk-gateway", log)
	menuHandler := handlers.NewMenuHandler(menuCache, log)
	cartHandler := handlers.NewCartHandler(cartStore, menuCache, log)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, cartStore, log)
	brandHandler := handlers.NewBrandHandler(brandProvider, nil, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public catalog and branding reads
		r.Get("/menu/items", menuHandler.ListItems)
		r.Get("/menu/categories", menuHandler.ListCategories)
		r.Get("/brand", brandHandler.Get)

		// Session-scoped cart and checkout
		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(cartStore))

			r.Get("/cart", cartHandler.Get)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items/{itemID}", cartHandler.UpdateItem)
			r.Delete("/cart/items/{itemID}", cartHandler.RemoveItem)
			r.Post("/cart/clear", cartHandler.Clear)
			r.Put("/cart/order-type", cartHandler.SetOrderType)

			r.Post("/checkout", checkoutHandler.Submit)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
