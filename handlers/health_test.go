package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_AllUp(t *testing.T) {
	a := newApp(t)
	w := a.do(t, call{method: "GET", path: "/api/health"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, "connected", body["redis"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHealth_RedisDownIsDegraded(t *testing.T) {
	a := newApp(t)
	a.redis.Close()

	w := a.do(t, call{method: "GET", path: "/api/health"})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, "disconnected", body["redis"])
}

func TestLiveness(t *testing.T) {
	a := newApp(t)
	w := a.do(t, call{method: "GET", path: "/health"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", w.Body.String())
}
