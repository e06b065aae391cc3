package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/famsalud/famsalud/backend/api/internal/auth"
	"github.com/famsalud/famsalud/backend/api/internal/config"
	"github.com/famsalud/famsalud/backend/api/internal/eps"
	"github.com/famsalud/famsalud/backend/api/internal/family"
	"github.com/famsalud/famsalud/backend/api/internal/health"
	"github.com/famsalud/famsalud/backend/api/pkg/middleware"
)

// Deps are the wired services the router mounts.
type Deps struct {
	Config *config.Config
	Auth   *auth.Service
	EPS    *eps.Service
	Family *family.Service
	Health *health.Checker
	// Redis backs the shared rate limiter when RateLimit.UseRedis is set. Optional.
	Redis *redis.Client
	// Metrics mounts /metrics from the default Prometheus gatherer.
	Metrics bool
}

// NewRouter builds the engine: global middleware, probes, docs and the API group.
func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger(), middleware.CORS(cfg.Server.CORSOrigin), middleware.ErrorHandler())

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && d.Redis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(d.Redis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	RegisterLiveness(r)
	RegisterSwagger(r, cfg.Server.APIPrefix)
	if d.Metrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	requireAuth := middleware.RequireAuth(d.Auth)
	api := r.Group(cfg.Server.APIPrefix)
	RegisterHealth(api, d.Health)
	NewAuthHandler(d.Auth, requireAuth, CookieOptions{
		Path:   cfg.Server.APIPrefix + "/auth",
		MaxAge: int(cfg.JWT.RefreshTokenTTL / time.Second),
		Secure: cfg.Server.IsProduction(),
	}).Register(api)
	NewEpsHandler(d.EPS).Register(api)
	NewFamilyHandler(d.Family, requireAuth).Register(api)

	r.NoRoute(middleware.NotFoundHandler)
	return r
}

// Server wraps the engine with the configured timeouts.
func Server(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
