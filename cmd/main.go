package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/richard-senior/footy/internal/logger"
	"github.com/richard-senior/footy/pkg/server"
	"github.com/richard-senior/footy/pkg/util/footy"
)

func main() {
	// Configure logging
	logger.SetShowDateTime(true)
	logger.SetLogOutput('c')

	logger.Info("Starting github.com/richard-senior/footy application")

	// .env is optional, the environment itself may carry the overrides
	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded configuration from .env")
	}
	footy.ApplyEnvOverrides(footy.Config)
	if err := footy.ValidateConfig(footy.Config); err != nil {
		logger.Fatal("Invalid configuration:", err)
	}

	if err := os.MkdirAll(footy.Config.AssetsPath, 0755); err != nil {
		logger.Fatal("Could not create assets directory:", err)
	}
	if err := footy.InitDatabase(footy.Config.DbPath); err != nil {
		logger.Fatal("Database initialization failed:", err)
	}
	defer footy.CloseDatabase()

	rebuild := len(os.Args) > 1 && os.Args[1] == "build-snapshot"

	var predictor *footy.Predictor
	var err error
	if !rebuild {
		predictor, err = footy.LoadSnapshot()
		if err != nil {
			logger.Warn("No usable snapshot, building one:", err)
			rebuild = true
		}
	}
	if rebuild {
		logger.Info("Building prediction snapshot...")
		predictor, err = footy.BuildSnapshot()
		if err != nil {
			logger.Error("Snapshot build failed:", err)
			os.Exit(1)
		}
		logger.Info("Snapshot build completed successfully")
	}

	s := server.NewServer(predictor, footy.NewLiveFeedClient())

	logger.Info("Starting prediction server...")
	if err := s.Start(); err != nil {
		logger.Error("Server error:", err)
		os.Exit(1)
	}
}
