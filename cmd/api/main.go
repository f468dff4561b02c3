package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/breeze/internal/config"
	"github.com/joshua-takyi/breeze/internal/connect"
	"github.com/joshua-takyi/breeze/internal/container"
	"github.com/joshua-takyi/breeze/internal/routes"
)

func main() {
	// .env.local is optional; real deployments set the environment directly
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Planner stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Starting Breeze planner", "environment", cfg.Environment, "model", cfg.GeminiModel)

	genaiClient, err := connect.InitGenAI(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return err
	}

	app, err := container.NewContainer(logger, cfg, genaiClient)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRoutes(app),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		// a response is only written once the model has answered
		WriteTimeout: cfg.GenerationTimeout + 15*time.Second,
		IdleTimeout:  90 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Listening", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	logger.Info("Shutdown requested, draining in-flight generations")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GenerationTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	logger.Info("Planner stopped")
	return nil
}

// newLogger writes text in development and JSON in production, both at
// LOG_LEVEL. Development logs carry the source line.
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.SlogLevel(),
		AddSource: cfg.IsDevelopment(),
	}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
