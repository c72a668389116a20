package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"protectedstorage/logger"
	"protectedstorage/server"
	"protectedstorage/settings"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Get().Info().Msg("Starting protected storage server")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Get().Warn().Msg("No .env file found, using environment variables")
	}

	provider := settings.New()

	srv := server.Setup(server.DefaultConfig(), provider)

	go server.Start(srv)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Get().Info().Msg("Shutdown signal received")

	if err := server.Shutdown(context.Background(), srv); err != nil {
		os.Exit(1)
	}
}
