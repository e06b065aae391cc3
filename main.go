package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/famsalud/famsalud/backend/api/handlers"
	"github.com/famsalud/famsalud/backend/api/internal/auth"
	"github.com/famsalud/famsalud/backend/api/internal/bootstrap"
	"github.com/famsalud/famsalud/backend/api/internal/config"
	"github.com/famsalud/famsalud/backend/api/internal/eps"
	"github.com/famsalud/famsalud/backend/api/internal/family"
	"github.com/famsalud/famsalud/backend/api/internal/health"
	"github.com/famsalud/famsalud/backend/api/internal/security"
	"github.com/famsalud/famsalud/backend/api/internal/sessions"
	"github.com/famsalud/famsalud/backend/api/internal/tokens"
	"github.com/famsalud/famsalud/backend/api/internal/users"
	"github.com/famsalud/famsalud/backend/api/pkg/logger"
	"github.com/famsalud/famsalud/backend/api/pkg/metrics"
)

func main() {
	// LOG_LEVEL is read before config so config errors are visible at the right level.
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.SetOutput(os.Stdout, cfg.Log.Format)
	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = devSecret()
		logger.Warn("generated an ephemeral JWT secret; tokens will not survive a restart")
	}

	ctx := context.Background()
	stores, err := bootstrap.Open(ctx, cfg, cfg.Database.AutoMigrate)
	if err != nil {
		logger.Fatalf("failed to open %s storage: %v", cfg.Database.Driver, err)
	}
	defer stores.Close()

	var rdb *redis.Client
	var cache sessions.Cache
	var cachePing health.Pinger
	if cfg.Database.Driver == config.DriverMemory {
		// fully in-process development mode
		mc := sessions.NewMemoryCache()
		cache, cachePing = mc, mc
	} else {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer func() { _ = rdb.Close() }()
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := rdb.Ping(pctx).Err(); err != nil {
			// sessions fail per request until Redis is back; /api/health reports it
			logger.Warnf("failed to connect to Redis (%s): %v", cfg.Redis.Addr(), err)
		} else {
			logger.Infof("connected to Redis %s", cfg.Redis.Addr())
		}
		cancel()
		rc := sessions.NewRedisCache(rdb)
		cache, cachePing = rc, rc
	}

	codec, err := tokens.NewCodec(cfg.JWT)
	if err != nil {
		logger.Fatalf("invalid JWT configuration: %v", err)
	}
	epsSvc := eps.NewService(stores.EPS)
	authSvc := auth.NewService(users.NewService(stores.Users), cache, codec, security.NewHasher(cfg.Security.BcryptCost))

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := handlers.NewRouter(handlers.Deps{
		Config:  cfg,
		Auth:    authSvc,
		EPS:     epsSvc,
		Family:  family.NewService(stores.Family, epsSvc),
		Health:  health.NewChecker(stores.DB, cachePing, health.DefaultTimeout),
		Redis:   rdb,
		Metrics: true,
	})

	srv := handlers.Server(cfg, r)
	go func() {
		logger.Infof("famsalud API listening on %s (driver=%s, prefix=%s)", srv.Addr, stores.Driver, cfg.Server.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

func devSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		logger.Fatalf("failed to generate JWT secret: %v", err)
	}
	return hex.EncodeToString(b)
}
