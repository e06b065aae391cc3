// Command migrate applies or rolls back the PostgreSQL schema.
//
//	migrate -direction up
//	migrate -direction down
package main

import (
	"errors"
	"flag"
	"os"

	"github.com/famsalud/famsalud/backend/api/internal/config"
	"github.com/famsalud/famsalud/backend/api/internal/database"
	"github.com/famsalud/famsalud/backend/api/pkg/logger"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	flag.Parse()

	logger.Init(os.Getenv("LOG_LEVEL"))
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		logger.Fatalf("migrations only apply to DATABASE_DRIVER=postgres (got %s)", cfg.Database.Driver)
	}

	err = database.Migrate(cfg.Database.URL, *direction)
	switch {
	case errors.Is(err, database.ErrNoChange):
		logger.Infof("schema already %s to date", *direction)
	case err != nil:
		logger.Fatalf("migration %s failed: %v", *direction, err)
	default:
		logger.Infof("migration %s complete", *direction)
	}
}
