package main

import (
	"log"

	"marroking/internal/api"
	"marroking/internal/config"
	"marroking/internal/database"
	"marroking/internal/events"
	"marroking/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	// Sync event publisher (no-op when no brokers are configured)
	publisher := events.NewPublisher(cfg.KafkaBrokers, logger)
	defer publisher.Close()

	// Initialize API server
	server := api.New(cfg, logger, db, publisher)

	// Start server
	logger.Info("Starting API server on port " + cfg.APIPort)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
