package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voice-shopping-assistant/app"
	"voice-shopping-assistant/config"
	"voice-shopping-assistant/logger"
)

func main() {
	if err := run(); err != nil {
		logger.S().Errorf("❌ %v", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	// Bootstrap logger so .env loading is visible
	if err := logger.Init(os.Getenv("ENV"), "info"); err != nil {
		return err
	}

	// Load .env in development; in production variables are set directly
	config.LoadDotEnv(".env")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize application
	application, err := app.Initialize(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           application.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.S().Infof("🚀 Server running on http://localhost:%s (env=%s, CORS origin=%s)", cfg.Port, cfg.Env, cfg.ClientOrigin)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.S().Info("🛑 Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
