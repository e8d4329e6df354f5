package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"clubops/internal/data/repository"
	"clubops/internal/realtime"
	"clubops/internal/wire"
	"clubops/pkg/utils"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	shutdownTimeout        = 10 * time.Second
	sessionCleanupInterval = time.Hour
	sessionRetention       = 7 * 24 * time.Hour
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and websocket server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServer(ctx)
	},
}

func runServer(ctx context.Context) error {
	config, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug))

	db, err := connect(ctx, config, logger)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	repo := repository.NewRepository(db, logger)

	hub := realtime.NewHub(logger)
	go hub.Run(ctx)

	events, err := broadcaster(ctx, config.Redis, hub, logger)
	if err != nil {
		return err
	}

	app := wire.Wiring(repo, hub, events, config, logger)
	go app.LoginLimiter.Run(ctx)
	go cleanSessions(ctx, repo, logger)

	return APIServer(ctx, app.Router, config.App.Port, logger)
}

// APIServer serves until ctx is cancelled, then drains in-flight requests.
func APIServer(ctx context.Context, route http.Handler, port string, logger *zap.Logger) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           route,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Server shutdown error", zap.Error(err))
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Server error", zap.Error(err))
		return err
	}
}

// broadcaster returns the local hub, or a Redis bus in front of it when
// REDIS_URL is set.
func broadcaster(ctx context.Context, config utils.RedisConfig, hub *realtime.Hub, logger *zap.Logger) (realtime.Broadcaster, error) {
	if config.URL == "" {
		return hub, nil
	}

	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	bus := realtime.NewRedisBus(client, config.Channel, hub, logger)
	go func() {
		defer client.Close()
		if err := bus.Run(ctx); err != nil {
			logger.Error("Redis fan-out stopped", zap.Error(err))
		}
	}()

	logger.Info("Realtime events fanned out through Redis", zap.String("channel", config.Channel))
	return bus, nil
}

func cleanSessions(ctx context.Context, repo *repository.Repository, logger *zap.Logger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := repo.Session.DeleteStale(ctx, now.Add(-sessionRetention))
			if err != nil {
				logger.Warn("Session cleanup failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Info("Stale sessions removed", zap.Int64("count", removed))
			}
		}
	}
}
