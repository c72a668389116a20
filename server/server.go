// Package server provides HTTP server configuration and setup for the
// protected storage service.
package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"protectedstorage/auth"
	"protectedstorage/handlers"
	"protectedstorage/logger"
	"protectedstorage/notify"
	"protectedstorage/settings"
)

// Config holds server configuration
type Config struct {
	Port              string
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port: port,
		// No read/write deadlines on the bodies: transfer duration is
		// bounded only by the size of the managed file.
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Setup configures and returns a new HTTP server with all routes
func Setup(config *Config, provider settings.Provider) *http.Server {
	gate := auth.NewGate()
	notifier := notify.New(provider)

	return &http.Server{
		Addr:              ":" + config.Port,
		Handler:           handlers.InitHandlers(provider, gate, notifier),
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		IdleTimeout:       config.IdleTimeout,
	}
}

// Start starts the HTTP server
func Start(srv *http.Server) {
	logger.Get().Info().Str("addr", srv.Addr).Msg("Starting server...")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Get().Fatal().Err(err).Msg("Server failed to start")
	}
}

// Shutdown gracefully shuts down the server
func Shutdown(ctx context.Context, srv *http.Server) error {
	logger.Get().Info().Msg("Graceful shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Get().Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	logger.Get().Info().Msg("Server shutdown complete")
	return nil
}
