package main

import (
	"os"

	"github.com/yigit/capstone/internal/pkg/logger"
	"github.com/yigit/capstone/internal/server"
)

// @title Capstone Review API
// @version 1.0
// @description API for capstone project registration and staged reviews

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// NewServer loads config, connects the database, runs migrations and builds the router
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
