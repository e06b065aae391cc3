// Package health probes the database and the session cache.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/famsalud/famsalud/backend/api/pkg/logger"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"

	Connected    = "connected"
	Disconnected = "disconnected"
)

// DefaultTimeout bounds each probe.
const DefaultTimeout = 3 * time.Second

// Pinger is anything that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type Report struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// HTTPStatus is 200 when every dependency is up and 503 otherwise.
func (r Report) HTTPStatus() int {
	if r.Status == StatusOK {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

type Checker struct {
	db      Pinger
	cache   Pinger
	timeout time.Duration
}

func NewChecker(db, cache Pinger, timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Checker{db: db, cache: cache, timeout: timeout}
}

func (c *Checker) Check(ctx context.Context) Report {
	r := Report{
		Database:  c.probe(ctx, "Database", c.db),
		Redis:     c.probe(ctx, "Redis", c.cache),
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
	}
	r.Status = StatusDegraded
	if r.Database == Connected && r.Redis == Connected {
		r.Status = StatusOK
	}
	return r
}

func (c *Checker) probe(ctx context.Context, name string, p Pinger) string {
	if p == nil {
		return Disconnected
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		logger.Errorf("%s health check failed: %v", name, err)
		return Disconnected
	}
	return Connected
}
