package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ReadCircle/bookgraphGo/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() {
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file loaded", zap.Error(err))
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := LoadConfig()
	if len(cfg.JwtSecret) == 0 {
		logger.Fatal("JWT_SECRET is required")
	}

	inject, err := NewInject(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed connecting to mongo", zap.Error(err))
	}
	if err := inject.SocialDb.EnsureIndexes(ctx); err != nil {
		logger.Fatal("Failed creating indexes", zap.Error(err))
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           inject.Server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	if err := inject.SocialDb.Close(shutdownCtx); err != nil {
		logger.Error("Failed closing mongo client", zap.Error(err))
	}
}
