package family

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famsalud/famsalud/backend/api/internal/apperrors"
	"github.com/famsalud/famsalud/backend/api/internal/eps"
	"github.com/famsalud/famsalud/backend/api/internal/models"
)

func ptr[T any](v T) *T { return &v }

func newService(t *testing.T) (*Service, []models.EpsProviderSummary) {
	t.Helper()
	providers := eps.NewService(eps.NewMemoryRepository())
	_, err := providers.Seed(context.Background(), eps.DefaultProviders())
	require.NoError(t, err)
	list, err := providers.List(context.Background())
	require.NoError(t, err)
	return NewService(NewMemoryRepository(), providers), list
}

func TestCreate_AttachesProviderAndParsesDate(t *testing.T) {
	svc, providers := newService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, "user-1", CreateInput{
		EpsProviderID: ptr(providers[0].ID),
		FullName:      "Luis Pérez",
		DocumentType:  ptr(models.DocumentTI),
		BirthDate:     ptr("2012-03-04"),
		Relationship:  "Hijo",
	})
	require.NoError(t, err)
	require.NotEmpty(t, m.ID)
	assert.Equal(t, "user-1", m.UserID)
	require.NotNil(t, m.EpsProvider)
	assert.Equal(t, providers[0], *m.EpsProvider)
	require.NotNil(t, m.BirthDate)
	assert.Equal(t, time.Date(2012, 3, 4, 0, 0, 0, 0, time.UTC), *m.BirthDate)
}

func TestCreate_UnknownProvider(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Create(context.Background(), "user-1", CreateInput{
		EpsProviderID: ptr("0b7d1f9e-3c3a-4f8e-9a55-2f0c1d6e7a10"),
		FullName:      "Ana",
		Relationship:  "Madre",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, eps.ErrNotFound))
}

func TestCreate_RejectsBadInput(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u", CreateInput{FullName: "Ana", Relationship: "Madre", BirthDate: ptr("ayer")})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = svc.Create(ctx, "u", CreateInput{FullName: "Ana", Relationship: "Madre", DocumentType: ptr(models.DocumentType("XX"))})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestList_OwnerScopedAndSorted(t *testing.T) {
	svc, providers := newService(t)
	ctx := context.Background()

	for _, name := range []string{"Zoe", "Andrés", "Marta"} {
		_, err := svc.Create(ctx, "owner", CreateInput{FullName: name, Relationship: "Hija", EpsProviderID: ptr(providers[1].ID)})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, "other", CreateInput{FullName: "Beto", Relationship: "Hijo"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Andrés", "Marta", "Zoe"}, []string{list[0].FullName, list[1].FullName, list[2].FullName})
	for _, m := range list {
		require.NotNil(t, m.EpsProvider)
		assert.Equal(t, providers[1].Code, m.EpsProvider.Code)
	}

	empty, err := svc.List(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestGet_OtherOwnerIsNotFound(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	m, err := svc.Create(ctx, "owner", CreateInput{FullName: "Ana", Relationship: "Madre"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, m.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.FullName)

	_, err = svc.Get(ctx, m.ID, "intruder")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestUpdate_PartialAndOwnership(t *testing.T) {
	svc, providers := newService(t)
	ctx := context.Background()
	m, err := svc.Create(ctx, "owner", CreateInput{FullName: "Ana", Relationship: "Madre", City: ptr("Bogotá")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, m.ID, "intruder", UpdateInput{FullName: ptr("Hacked")})
	assert.True(t, errors.Is(err, ErrNotFound))

	updated, err := svc.Update(ctx, m.ID, "owner", UpdateInput{
		FullName:      ptr("Ana María"),
		EpsProviderID: ptr(providers[2].ID),
		BirthDate:     ptr("1960-01-02T00:00:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.FullName)
	assert.Equal(t, "Madre", updated.Relationship)
	require.NotNil(t, updated.City)
	assert.Equal(t, "Bogotá", *updated.City)
	require.NotNil(t, updated.EpsProvider)
	assert.Equal(t, providers[2].ID, updated.EpsProvider.ID)

	_, err = svc.Update(ctx, m.ID, "owner", UpdateInput{EpsProviderID: ptr("0b7d1f9e-3c3a-4f8e-9a55-2f0c1d6e7a10")})
	assert.True(t, errors.Is(err, eps.ErrNotFound))
}

func TestRemove(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	m, err := svc.Create(ctx, "owner", CreateInput{FullName: "Ana", Relationship: "Madre"})
	require.NoError(t, err)

	assert.True(t, errors.Is(svc.Remove(ctx, m.ID, "intruder"), ErrNotFound))
	require.NoError(t, svc.Remove(ctx, m.ID, "owner"))
	assert.True(t, errors.Is(svc.Remove(ctx, m.ID, "owner"), ErrNotFound))
}
