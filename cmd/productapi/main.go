package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskhub/internal/config"
	"taskhub/internal/db"
	httpServer "taskhub/internal/http"
	"taskhub/internal/http/handlers"
	"taskhub/internal/http/middleware"
	"taskhub/internal/logger"
	"taskhub/internal/repository"
)

var version = "dev"

func main() {
	cfg := config.LoadProductAPI()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Connection failed!", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Connected to database!")

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	repo := repository.NewProductRepository(pool)
	r := httpServer.NewEngine(cfg.AllowedOrigin)
	httpServer.RegisterProductRoutes(r,
		handlers.NewProductHandler(repo),
		handlers.NewHealthHandler(repo, "postgres", version),
		httpServer.RateLimits{Requests: cfg.APIRateLimit, Window: cfg.APIRateWindow},
	)

	srv := &http.Server{
		Addr:              ":" + cfg.ProductPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server is running on port " + cfg.ProductPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
