package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ablab/adapters/postgres"
	"ablab/app"
	"ablab/internal"
	"ablab/internal/config"
	"ablab/internal/history"
	"ablab/ports"
	"ablab/ui"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := internal.NewDefaultLogger()
	gin.SetMode(cfg.Server.GinMode)

	runs := buildRunRepository(cfg, logger)

	server, err := ui.NewServer(app.NewAnalysisService(), runs, cfg, logger)
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}
	if err := server.Start(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// buildRunRepository connects the history store when DATABASE_URL is set,
// otherwise falls back to the bounded in-memory store.
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
