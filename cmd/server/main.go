package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MarieAhluwalia/nutrimap/config"
	httpDelivery "github.com/MarieAhluwalia/nutrimap/internal/delivery/http"
	"github.com/MarieAhluwalia/nutrimap/internal/infrastructure/cache"
	"github.com/MarieAhluwalia/nutrimap/internal/infrastructure/foodtable"
	"github.com/MarieAhluwalia/nutrimap/internal/platform/logger"
	"github.com/MarieAhluwalia/nutrimap/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.LoadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting NutriMap backend",
		"version", "1.0.0",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"cache", cfg.Cache.Type)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the clustered food table once; it is read-only afterwards
	loader, err := foodtable.NewLoader(cfg.Data.Source, cfg.Data.Path, cfg.Data.Table)
	if err != nil {
		log.Fatal("invalid data source", "error", err)
	}
	table, err := loader.Load(ctx)
	if err != nil {
		log.Fatal("failed to load food table", "source", cfg.Data.Source, "path", cfg.Data.Path, "error", err)
	}
	log.Info("food table loaded", "rows", table.Len(), "columns", table.Columns())

	// Initialize infrastructure dependencies
	swapCache, err := cache.New(ctx, cfg.Cache.Type, cfg.Cache.RedisURL)
	if err != nil {
		log.Fatal("failed to initialize cache", "type", cfg.Cache.Type, "error", err)
	}
	defer swapCache.Close()

	// Initialize usecase layer
	foods := usecase.NewFoodService(table, swapCache, usecase.FoodServiceConfig{
		CacheTTL:        cfg.Cache.TTL,
		ExampleLimit:    cfg.Swap.ExampleLimit,
		SuggestionLimit: cfg.Swap.SuggestionLimit,
	}, log)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(foods, log)
	router := httpDelivery.SetupRouter(cfg, handler, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", "error", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
