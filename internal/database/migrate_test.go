package database

import (
	"context"
	"io/fs"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMigrate_RejectsBadInput(t *testing.T) {
	err := RunMigrations("", "up")
	require.Error(t, err)
	require.Contains(t, err.Error(), "DATABASE_URL")

	err = RunMigrations("postgres://localhost/x", "sideways")
	require.Error(t, err)
	require.Contains(t, err.Error(), "direction")
}

func TestMigrationFiles_ArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)
	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
			_, err := fs.Stat(migrationsFS, "migrations/"+strings.TrimSuffix(e.Name(), ".up.sql")+".down.sql")
			require.NoError(t, err, "missing down migration for %s", e.Name())
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	require.Equal(t, 3, ups)
	require.Equal(t, ups, downs)
}

// TestRunMigrations_Postgres needs a live database in TEST_DATABASE_URL.
func TestRunMigrations_Postgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, RunMigrations(url, "up"))
	require.ErrorIs(t, Migrate(url, "up"), ErrNoChange)

	pool, err := ConnectPostgres(context.Background(), url, 2, 5*time.Second)
	require.NoError(t, err)
	defer pool.Close()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT count(*) FROM information_schema.tables WHERE table_name IN ('users','eps_providers','family_members')`).Scan(&n))
	require.Equal(t, 3, n)
}

func TestConnect_EmptyURL(t *testing.T) {
	_, err := ConnectPostgres(context.Background(), "", 1, time.Second)
	require.Error(t, err)
	_, err = ConnectMongo(context.Background(), "", time.Second)
	require.Error(t, err)
}
