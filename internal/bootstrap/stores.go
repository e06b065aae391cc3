// Package bootstrap opens the storage backend selected by DATABASE_DRIVER and
// hands back the repositories built on it.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/famsalud/famsalud/backend/api/internal/config"
	"github.com/famsalud/famsalud/backend/api/internal/database"
	"github.com/famsalud/famsalud/backend/api/internal/eps"
	"github.com/famsalud/famsalud/backend/api/internal/family"
	"github.com/famsalud/famsalud/backend/api/internal/health"
	"github.com/famsalud/famsalud/backend/api/internal/users"
	"github.com/famsalud/famsalud/backend/api/pkg/logger"
)

// Stores groups the repositories of one backend.
type Stores struct {
	Driver string
	Users  users.Repository
	EPS    eps.Repository
	Family family.Repository
	// DB reports reachability of the backend for the health endpoint.
	DB health.Pinger

	closers []func()
}

// Close releases the backend connections.
func (s *Stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// Open connects to the configured driver. With migrate set, the Postgres schema
// is brought up to date first.
func Open(ctx context.Context, cfg *config.Config, migrate bool) (*Stores, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, migrate)
	case config.DriverMongo:
		return openMongo(ctx, cfg)
	case config.DriverMemory:
		logger.Warn("using in-memory storage; data is lost on restart")
		return &Stores{
			Driver: config.DriverMemory,
			Users:  users.NewMemoryRepository(),
			EPS:    eps.NewMemoryRepository(),
			Family: family.NewMemoryRepository(),
			DB:     health.PingFunc(func(context.Context) error { return nil }),
		}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
}

func openPostgres(ctx context.Context, cfg *config.Config, migrate bool) (*Stores, error) {
	if migrate {
		if err := database.RunMigrations(cfg.Database.URL, "up"); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Infof("database migrations applied")
	}
	pool, err := database.ConnectPostgres(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.Timeout)
	if err != nil {
		return nil, err
	}
	logger.Infof("connected to PostgreSQL")
	return &Stores{
		Driver:  config.DriverPostgres,
		Users:   users.NewPostgresRepository(pool),
		EPS:     eps.NewPostgresRepository(pool),
		Family:  family.NewPostgresRepository(pool),
		DB:      health.PingFunc(pool.Ping),
		closers: []func(){pool.Close},
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config) (*Stores, error) {
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDB.Database)
	u := users.NewMongoRepository(db.Collection("users"))
	p := eps.NewMongoRepository(db.Collection("eps_providers"))
	f := family.NewMongoRepository(db.Collection("family_members"))

	ictx, cancel := context.WithTimeout(ctx, cfg.MongoDB.Timeout)
	defer cancel()
	for name, ensure := range map[string]func(context.Context) error{
		"users": u.EnsureIndexes, "eps_providers": p.EnsureIndexes, "family_members": f.EnsureIndexes,
	} {
		if err := ensure(ictx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ensure %s indexes: %w", name, err)
		}
	}
	logger.Infof("connected to MongoDB database %s", cfg.MongoDB.Database)
	return &Stores{
		Driver: config.DriverMongo,
		Users:  u,
		EPS:    p,
		Family: f,
		DB:     u,
		closers: []func(){func() {
			_ = client.Disconnect(context.Background())
		}},
	}, nil
}
