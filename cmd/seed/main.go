// Command seed loads the EPS provider catalogue into the configured store.
// Existing providers are matched by code and updated in place.
package main

import (
	"context"
	"os"

	"github.com/famsalud/famsalud/backend/api/internal/bootstrap"
	"github.com/famsalud/famsalud/backend/api/internal/config"
	"github.com/famsalud/famsalud/backend/api/internal/eps"
	"github.com/famsalud/famsalud/backend/api/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.Database.Driver == config.DriverMemory {
		logger.Fatalf("nothing to seed with DATABASE_DRIVER=memory")
	}

	ctx := context.Background()
	stores, err := bootstrap.Open(ctx, cfg, cfg.Database.AutoMigrate)
	if err != nil {
		logger.Fatalf("failed to open %s storage: %v", cfg.Database.Driver, err)
	}
	defer stores.Close()

	providers := eps.DefaultProviders()
	created, err := eps.NewService(stores.EPS).Seed(ctx, providers)
	if err != nil {
		stores.Close()
		logger.Fatalf("seed failed: %v", err)
	}
	logger.Infof("seeded %d EPS providers (%d new, %d updated)", len(providers), created, len(providers)-created)
}
