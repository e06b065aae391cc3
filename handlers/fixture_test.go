package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/famsalud/famsalud/backend/api/internal/auth"
	"github.com/famsalud/famsalud/backend/api/internal/config"
	"github.com/famsalud/famsalud/backend/api/internal/eps"
	"github.com/famsalud/famsalud/backend/api/internal/family"
	"github.com/famsalud/famsalud/backend/api/internal/health"
	"github.com/famsalud/famsalud/backend/api/internal/security"
	"github.com/famsalud/famsalud/backend/api/internal/sessions"
	"github.com/famsalud/famsalud/backend/api/internal/tokens"
	"github.com/famsalud/famsalud/backend/api/internal/users"
)

type app struct {
	router *gin.Engine
	redis  *mr.Miniredis
	users  *users.MemoryRepository
	eps    *eps.Service
	epsDB  *eps.MemoryRepository
	cfg    *config.Config
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "development", APIPrefix: "/api", CORSOrigin: "*"},
		JWT: config.JWTConfig{
			Secret:          "handlers-test-secret-0123456789ab",
			Algorithm:       "HS256",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
	}
}

func newApp(t *testing.T, mutate ...func(*config.Config)) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}

	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	codec, err := tokens.NewCodec(cfg.JWT)
	require.NoError(t, err)

	userRepo := users.NewMemoryRepository()
	authSvc := auth.NewService(users.NewService(userRepo), sessions.NewRedisCache(client), codec, security.NewHasher(cfg.Security.BcryptCost))

	epsRepo := eps.NewMemoryRepository()
	epsSvc := eps.NewService(epsRepo)
	_, err = epsSvc.Seed(context.Background(), eps.DefaultProviders())
	require.NoError(t, err)

	r := NewRouter(Deps{
		Config: cfg,
		Auth:   authSvc,
		EPS:    epsSvc,
		Family: family.NewService(family.NewMemoryRepository(), epsSvc),
		Health: health.NewChecker(epsSvc, health.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() }), time.Second),
		Redis:  client,
	})
	return &app{router: r, redis: m, users: userRepo, eps: epsSvc, epsDB: epsRepo, cfg: cfg}
}

type call struct {
	method  string
	path    string
	body    any
	token   string
	cookies []*http.Cookie
}

func (a *app) do(t *testing.T, c call) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := c.body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(c.method, c.path, &buf)
	if c.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// errorBody decodes the error envelope and drops the timestamp after checking its shape.
func errorBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := decode[map[string]any](t, w)
	ts, ok := body["timestamp"].(string)
	require.True(t, ok, "timestamp missing: %s", w.Body.String())
	_, err := time.Parse("2006-01-02T15:04:05.000Z", ts)
	require.NoError(t, err)
	delete(body, "timestamp")
	return body
}

func refreshCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == RefreshCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", RefreshCookie)
	return nil
}

func (a *app) register(t *testing.T, email, password, name string) map[string]any {
	t.Helper()
	w := a.do(t, call{method: "POST", path: "/api/auth/register", body: map[string]string{"email": email, "password": password, "fullName": name}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]any](t, w)
}

// login returns the access token and the refresh cookie.
func (a *app) login(t *testing.T, email, password string) (string, *http.Cookie) {
	t.Helper()
	w := a.do(t, call{method: "POST", path: "/api/auth/login", body: map[string]string{"email": email, "password": password}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[map[string]string](t, w)
	require.NotEmpty(t, body["accessToken"])
	return body["accessToken"], refreshCookie(t, w)
}
