package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	APIPrefix    string
	CORSOrigin   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// IsProduction reports whether cookies must be marked Secure and secrets enforced.
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

// Driver names accepted by DATABASE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type DatabaseConfig struct {
	Driver      string
	URL         string
	MaxConns    int32
	Timeout     time.Duration
	AutoMigrate bool
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port for the Redis client.
func (r RedisConfig) Addr() string { return r.Host + ":" + r.Port }

type JWTConfig struct {
	Secret          string
	Algorithm       string
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type SecurityConfig struct {
	BcryptCost int
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type LogConfig struct {
	Level  string
	Format string
}

// LoadConfig loads configuration from environment variables and an optional .env file.
// Environment variables win over .env values.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_MAX_CONNS", 10)
	v.SetDefault("DATABASE_TIMEOUT", 10)
	v.SetDefault("DATABASE_AUTO_MIGRATE", true)
	v.SetDefault("MONGODB_DATABASE", "famsalud")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_ALGORITHM", "HS256")
	v.SetDefault("JWT_ACCESS_TOKEN_TTL", "15m")
	v.SetDefault("JWT_REFRESH_TOKEN_TTL", "168h")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_USE_REDIS", false)
	v.SetDefault("RATE_LIMIT_RPS", 5.0)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			APIPrefix:    "/" + strings.Trim(v.GetString("API_PREFIX"), "/"),
			CORSOrigin:   v.GetString("CORS_ORIGIN"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:      strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_DRIVER"))),
			URL:         v.GetString("DATABASE_URL"),
			MaxConns:    v.GetInt32("DATABASE_MAX_CONNS"),
			Timeout:     time.Duration(v.GetInt("DATABASE_TIMEOUT")) * time.Second,
			AutoMigrate: v.GetBool("DATABASE_AUTO_MIGRATE"),
		},
		MongoDB: MongoDBConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:          v.GetString("JWT_SECRET"),
			Algorithm:       strings.ToUpper(strings.TrimSpace(v.GetString("JWT_ALGORITHM"))),
			Issuer:          v.GetString("JWT_ISSUER"),
			AccessTokenTTL:  v.GetDuration("JWT_ACCESS_TOKEN_TTL"),
			RefreshTokenTTL: v.GetDuration("JWT_REFRESH_TOKEN_TTL"),
		},
		Security: SecurityConfig{
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field rules. It does not touch the network.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" {
			return errors.New("config: DATABASE_URL is required when DATABASE_DRIVER=postgres")
		}
	case DriverMongo:
		if c.MongoDB.URI == "" {
			return errors.New("config: MONGODB_URI is required when DATABASE_DRIVER=mongo")
		}
	case DriverMemory:
		if c.Server.IsProduction() {
			return errors.New("config: DATABASE_DRIVER=memory is not allowed in production")
		}
	default:
		return fmt.Errorf("config: unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}

	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("config: unsupported JWT_ALGORITHM %q", c.JWT.Algorithm)
	}
	if c.JWT.Secret == "" {
		if c.Server.IsProduction() {
			return errors.New("config: JWT_SECRET must be set in production")
		}
	}
	if c.JWT.AccessTokenTTL <= 0 || c.JWT.RefreshTokenTTL <= 0 {
		return errors.New("config: token TTLs must be positive")
	}
	if c.JWT.RefreshTokenTTL < c.JWT.AccessTokenTTL {
		return errors.New("config: JWT_REFRESH_TOKEN_TTL must not be shorter than JWT_ACCESS_TOKEN_TTL")
	}

	minCost := 4
	if c.Server.IsProduction() {
		minCost = 12
	}
	if c.Security.BcryptCost < minCost || c.Security.BcryptCost > 31 {
		return fmt.Errorf("config: BCRYPT_COST must be between %d and 31", minCost)
	}
	return nil
}

// Warnings lists non-fatal configuration smells worth logging at startup.
func (c *Config) Warnings() []string {
	var out []string
	if c.JWT.Secret == "" {
		out = append(out, "JWT_SECRET is not set; set a secure value in production")
	} else if len(c.JWT.Secret) < 32 {
		out = append(out, "JWT_SECRET is shorter than 32 bytes")
	}
	if c.Security.BcryptCost < 12 {
		out = append(out, fmt.Sprintf("BCRYPT_COST=%d is below the recommended 12", c.Security.BcryptCost))
	}
	return out
}
