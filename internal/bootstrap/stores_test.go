package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famsalud/famsalud/backend/api/internal/config"
	"github.com/famsalud/famsalud/backend/api/internal/eps"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: config.DriverMemory}}
	s, err := Open(context.Background(), cfg, true)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, config.DriverMemory, s.Driver)
	require.NoError(t, s.DB.Ping(context.Background()))

	svc := eps.NewService(s.EPS)
	n, err := svc.Seed(context.Background(), eps.DefaultProviders())
	require.NoError(t, err)
	assert.Equal(t, len(eps.DefaultProviders()), n)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Database: config.DatabaseConfig{Driver: "sqlite"}}, false)
	require.Error(t, err)
}

func TestOpen_PostgresWithoutURL(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Database: config.DatabaseConfig{Driver: config.DriverPostgres}}, true)
	require.Error(t, err)
}
