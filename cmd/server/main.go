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

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/panny-app/panny-backend/internal/config"
	"github.com/panny-app/panny-backend/internal/httpapi"
	"github.com/panny-app/panny-backend/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The server runs with or without a database. With no handle the
	// handlers report the store as unavailable per endpoint.
	var st store.Store
	var mg *store.Mongo
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, store disabled")
	} else {
		mg, err = store.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseName)
		if err != nil {
			logger.Warn("store unavailable", zap.Error(err))
		} else {
			st = mg
			logger.Info("store configured", zap.String("database", mg.Name()))
		}
	}

	router := httpapi.NewRouter(st, cfg, logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if mg != nil {
		if err := mg.Close(shutdownCtx); err != nil {
			logger.Error("store close failed", zap.Error(err))
		}
	}
}
