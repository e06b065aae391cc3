package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famsalud/famsalud/backend/api/internal/apperrors"
	"github.com/famsalud/famsalud/backend/api/internal/models"
)

func TestService_CreateAndLookup(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	u, err := svc.Create(ctx, "alice@x.com", "hash", "Alice")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	assert.True(t, u.IsActive)
	assert.False(t, u.CreatedAt.IsZero())

	byEmail, err := svc.GetByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := svc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Alice", byID.FullName)

	missing, err := svc.GetByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestService_CreateDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, "dup@x.com", "h1", "First")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "dup@x.com", "h2", "Second")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	// case-sensitive as stored
	_, err = svc.Create(ctx, "DUP@x.com", "h3", "Third")
	require.NoError(t, err)
}

// racyRepo hides the existing user from the pre-check so only the store constraint fires.
type racyRepo struct {
	*MemoryRepository
}

func (r racyRepo) GetByEmail(context.Context, string) (*models.User, error) { return nil, nil }

func TestService_CreateConstraintViolationIsConflict(t *testing.T) {
	repo := racyRepo{NewMemoryRepository()}
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, "race@x.com", "h", "A")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "race@x.com", "h", "B")
	assert.True(t, errors.Is(err, ErrEmailTaken))
}

type failingRepo struct{ Repository }

func (failingRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, errors.New("connection reset")
}

func TestService_StoreFailurePropagates(t *testing.T) {
	svc := NewService(failingRepo{})
	_, err := svc.Create(context.Background(), "a@x.com", "h", "A")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}

func TestMemoryRepository_SetActiveAndCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	u := &models.User{ID: "u1", Email: "u1@x.com", IsActive: true}
	require.NoError(t, repo.Create(ctx, u))

	got, _ := repo.GetByID(ctx, "u1")
	got.FullName = "mutated"
	again, _ := repo.GetByID(ctx, "u1")
	assert.Empty(t, again.FullName)

	repo.SetActive("u1", false)
	again, _ = repo.GetByID(ctx, "u1")
	assert.False(t, again.IsActive)
}
