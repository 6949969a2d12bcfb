package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/joho/godotenv"

	"github.com/mmuslimabdulj/goat-relay/internal/config"
	httpHandler "github.com/mmuslimabdulj/goat-relay/internal/delivery/http"
	"github.com/mmuslimabdulj/goat-relay/internal/delivery/ws"
	"github.com/mmuslimabdulj/goat-relay/internal/middleware"
	"github.com/mmuslimabdulj/goat-relay/internal/usecase"
)

func main() {
	// Load .env file (ignore error if not exists, e.g. in production)
	_ = godotenv.Load()

	cfg := config.LoadFromEnv()
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	// Initialize dependencies
	registry := usecase.NewRegistry()
	hub := ws.NewHub(logger)
	hub.SetEventLimit(cfg.RateLimitEvents, cfg.EventBurst)
	hub.SetMaxMessageSize(cfg.MaxMessageSize)
	hub.SetHandler(usecase.NewChatService(
		registry,
		hub,
		usecase.NewProfanityChecker(cfg.ProfanityFilter),
		usecase.NewSanitizer(),
		logger,
	))

	hubCtx, stopHub := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	wsLimiter := middleware.NewIPRateLimiter(cfg.RateLimitWS, int(cfg.RateLimitWS)*2)
	handler := httpHandler.NewHandler(hub, registry, cfg, logger)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpHandler.NewRouter(handler, cfg, wsLimiter),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server is up", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				return server.Shutdown(ctx)
			},
			"hub": func(ctx context.Context) error {
				stopHub()
				select {
				case <-hub.Done():
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			},
			"rate-limiter": func(context.Context) error {
				wsLimiter.Close()
				return nil
			},
		},
	)

	exitCode := <-wait
	logger.Info("server exited", "code", exitCode)
	os.Exit(exitCode)
}
