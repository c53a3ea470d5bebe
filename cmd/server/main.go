package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/certiverify/api/internal/api"
	"github.com/certiverify/api/internal/config"
	"github.com/certiverify/api/internal/repository/jsonfile"
	"github.com/certiverify/api/internal/service"
	"github.com/certiverify/api/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	// Initialize flat-file storage
	store, err := jsonfile.NewStore(cfg.DataDir)
	if err != nil {
		zl.Fatal("failed to open data directory", zap.Error(err))
	}

	// Initialize repositories and services
	repos := jsonfile.NewRepositories(store)
	services := service.NewServices(repos, cfg, zl)

	// Initialize router
	router := api.NewRouter(services, zl)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		zl.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("data_dir", cfg.DataDir),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("forced shutdown", zap.Error(err))
	}
}
