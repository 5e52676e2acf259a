package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bookings-rest-api/internal/config"
	"bookings-rest-api/internal/handler"
	"bookings-rest-api/internal/logging"
	"bookings-rest-api/internal/repository"
	"bookings-rest-api/internal/router"
	"bookings-rest-api/internal/service"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()
	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	slog.Info("starting bookings API", "environment", cfg.App.Environment, "version", cfg.App.Version)

	// Initialize the item repository
	repo, err := repository.NewMongoItemRepository(cfg.Mongo)
	if err != nil {
		slog.Error("failed to initialize repository", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	// Initialize services and handlers
	itemService := service.NewItemService(repo)

	r := router.New(router.Config{
		IndexHandler:  handler.NewIndexHandler(cfg.App.Name, cfg.App.Version),
		ItemHandler:   handler.NewItemHandler(itemService),
		HealthHandler: handler.NewHealthHandler(itemService, cfg.App.Version),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server listening", "address", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}
