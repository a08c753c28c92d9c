package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"taskhub/internal/config"
	httpServer "taskhub/internal/http"
	"taskhub/internal/http/handlers"
	"taskhub/internal/http/middleware"
	"taskhub/internal/logger"
	"taskhub/internal/repository"
	"taskhub/internal/service"
	"taskhub/internal/storage"
	"taskhub/internal/view"
	"taskhub/internal/ws"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var version = "dev"

func main() {
	cfg := config.LoadTaskBoard()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open task store", "store_backend", cfg.StoreBackend, "error", err)
	}
	defer store.Close()

	board := service.NewBoard()
	ctrl := service.NewTaskController(
		repository.NewTaskModel(store, cfg.TasksKey),
		board,
		service.ControllerOptions{RejectWhenBusy: cfg.RejectWhenBusy},
	)
	tasks, err := ctrl.Load(ctx)
	if err != nil {
		logger.Fatal("failed to load tasks", "error", err)
	}
	logger.Info("tasks loaded", "count", len(tasks), "key", cfg.TasksKey)

	secret := cfg.ConfirmSecret
	if secret == "" {
		secret = uuid.NewString()
		logger.Warn("CONFIRM_SECRET not set, using a random secret for this process")
	}
	confirm := view.NewDeleteConfirmation(service.NewConfirmIssuer(secret, cfg.ConfirmTTL), ctrl)

	if rs, ok := store.(*storage.Redis); ok {
		middleware.UseRedisClient(rs.Client())
	} else {
		middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}

	hub := ws.NewHub(board)
	hub.Start(ctx)

	r := httpServer.NewEngine(cfg.AllowedOrigin)
	httpServer.RegisterTaskRoutes(r, httpServer.TaskRoutes{
		Tasks:         handlers.NewTaskHandler(ctrl, confirm),
		Health:        handlers.NewHealthHandler(store, cfg.StoreBackend, version),
		Hub:           hub,
		AllowedOrigin: cfg.AllowedOrigin,
		Limits:        httpServer.RateLimits{Requests: cfg.APIRateLimit, Window: cfg.APIRateWindow},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("task board started", "port", cfg.AppPort, "store_backend", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server stopped with error", "error", err)
	}
	logger.Info("server exited")
}
