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
	"kiosk-gateway/internal/config"
	"kiosk-gateway/internal/handlers"
	"kiosk-gateway/internal/kitchen"
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

	log.Info("starting admin gateway",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"upstream", cfg.Upstream.BaseURL,
		"poll_interval", cfg.Kitchen.PollInterval.String(),
	)

	if cfg.Upstream.Username == "" || cfg.Upstream.Password == "" {
		log.Warn("no upstream service account configured, kitchen board polling will fail")
	}

	// Background tasks stop when the process shuts down
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Upstream platform client; the kitchen board polls with a service
	// account token while staff requests forward their own tokens.
	client := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	tokens := upstream.NewPasswordTokenSource(client, cfg.Upstream.Username, cfg.Upstream.Password)
	adminBackend := upstream.NewAdminBackend(client, tokens)

	board := kitchen.NewBoard(adminBackend, kitchen.Config{
		PollInterval: cfg.Kitchen.PollInterval,
		OrderLimit:   cfg.Kitchen.OrderLimit,
		LateAfter:    cfg.Kitchen.LateAfter,
	}, log)
	go board.Run(ctx)

	brandProvider := brand.NewProvider(client, log)
	if err := brandProvider.Load(ctx); err != nil {
		log.Warn("starting with default branding", "error", err)
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler("admin-gateway", log)
	authHandler := handlers.NewAuthHandler(client, log)
	kitchenHandler := handlers.NewKitchenHandler(board, log)
	menuHandler := handlers.NewAdminMenuHandler(client, log)
	uploadHandler := handlers.NewUploadHandler(client, log)
	brandHandler := handlers.NewBrandHandler(brandProvider, client, log)

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
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)
		r.Get("/brand/settings", brandHandler.Get)

		// Staff-only routes; the bearer token is forwarded upstream
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth())

			r.Get("/kitchen/orders", kitchenHandler.ListOrders)
			r.Post("/kitchen/orders/{orderID}/advance", kitchenHandler.AdvanceOrder)

			r.Post("/menu/items", menuHandler.CreateItem)
			r.Put("/menu/items/{itemID}", menuHandler.UpdateItem)
			r.Delete("/menu/items/{itemID}", menuHandler.DeleteItem)

			r.Post("/upload/image", uploadHandler.Image)
			r.Post("/brand/settings", brandHandler.Save)
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
