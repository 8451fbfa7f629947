package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campstead/internal/cache"
	"campstead/internal/config"
	"campstead/internal/database"
	"campstead/internal/middleware"
	"campstead/internal/server"
	"campstead/internal/session"
	"campstead/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		middleware.Logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		middleware.Logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	cache.InitRedis(cfg.RedisURL)
	sessions := session.NewStore(cache.GetClient(), cfg.SessionTTL())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	images, err := storage.NewMinioStore(ctx, cfg)
	cancel()

	var imageStore storage.Store = images
	if err != nil {
		if cfg.Env == "production" || cfg.Env == "prod" {
			middleware.Logger.Error("failed to connect to object storage", "error", err)
			os.Exit(1)
		}
		// Local development keeps working without MinIO; uploads are
		// lost on restart.
		middleware.Logger.Warn("object storage unavailable, using in-memory store", "error", err)
		imageStore = storage.NewMemoryStore()
	}

	srv := server.New(cfg, db, sessions, imageStore)

	go func() {
		if err := srv.Listen(); err != nil {
			middleware.Logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()
	middleware.Logger.Info("server started", "port", cfg.Port, "env", cfg.Env)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	middleware.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		middleware.Logger.Error("graceful shutdown failed", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if client := cache.GetClient(); client != nil {
		_ = client.Close()
	}
}
