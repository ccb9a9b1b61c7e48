package main

import (
	"log"

	"github.com/joho/godotenv"

	"ablab/adapters/api"
	"ablab/adapters/postgres"
	"ablab/app"
	"ablab/internal"
	"ablab/internal/config"
	"ablab/internal/history"
	"ablab/ports"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := internal.NewDefaultLogger()

	analysis := app.NewAnalysisService()
	sweep := app.NewSweepService(analysis)

	a := api.NewApp(analysis, sweep, buildRunRepository(cfg, logger), cfg, logger)
	if err := a.Start(":" + cfg.Server.APIPort); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func buildRunRepository(cfg *config.Config, logger *internal.Logger) ports.RunRepository {
	if cfg.Database.URL == "" {
		logger.Info("No DATABASE_URL set, keeping run history in memory")
		return history.NewMemoryStore(100)
	}
	repo, err := postgres.NewRunRepository(cfg.Database.URL)
	if err != nil {
		logger.Warn("Failed to connect to run history database, using memory: %v", err)
		return history.NewMemoryStore(100)
	}
	logger.Info("Run history persisted to Postgres")
	return repo
}
