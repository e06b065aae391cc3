package users

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/famsalud/famsalud/backend/api/internal/apperrors"
	"github.com/famsalud/famsalud/backend/api/internal/database"
	"github.com/famsalud/famsalud/backend/api/internal/models"
)

// Runs against TEST_DATABASE_URL; skipped otherwise.
func TestPostgresRepository(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, database.RunMigrations(url, "up"))
	ctx := context.Background()
	pool, err := database.ConnectPostgres(ctx, url, 2, 5*time.Second)
	require.NoError(t, err)
	defer pool.Close()

	repo := NewPostgresRepository(pool)
	require.NoError(t, repo.Ping(ctx))

	email := uuid.NewString() + "@x.com"
	u := &models.User{ID: uuid.NewString(), Email: email, PasswordHash: "h", FullName: "PG", IsActive: true}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, u.ID, got.ID)

	dup := &models.User{ID: uuid.NewString(), Email: email, PasswordHash: "h", FullName: "PG2"}
	err = repo.Create(ctx, dup)
	require.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	missing, err := repo.GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	require.Nil(t, missing)
}
