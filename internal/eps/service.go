package eps

import (
	"context"
	"fmt"

	"github.com/famsalud/famsalud/backend/api/internal/apperrors"
	"github.com/famsalud/famsalud/backend/api/internal/models"
	"github.com/famsalud/famsalud/backend/api/pkg/logger"
)

var ErrNotFound = apperrors.NotFound("EPS provider not found")

type Service struct {
	repo Repository
}

func NewService(r Repository) *Service { return &Service{repo: r} }

// List returns the active providers ordered by name.
func (s *Service) List(ctx context.Context) ([]models.EpsProviderSummary, error) {
	list, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.EpsProviderSummary, 0, len(list))
	for i := range list {
		out = append(out, list[i].Summary())
	}
	return out, nil
}

// Get returns one provider, active or not.
func (s *Service) Get(ctx context.Context, id string) (*models.EpsProvider, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// Summaries resolves ids to summaries; unknown ids are left out.
func (s *Service) Summaries(ctx context.Context, ids []string) (map[string]models.EpsProviderSummary, error) {
	found, err := s.repo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.EpsProviderSummary, len(found))
	for id, p := range found {
		out[id] = p.Summary()
	}
	return out, nil
}

// Seed upserts providers by code and reports how many were newly created.
func (s *Service) Seed(ctx context.Context, providers []models.EpsProvider) (int, error) {
	created := 0
	for i := range providers {
		p := providers[i]
		isNew, err := s.repo.UpsertByCode(ctx, &p)
		if err != nil {
			return created, fmt.Errorf("seed %s: %w", p.Code, err)
		}
		if isNew {
			created++
		}
		logger.Debugf("seeded EPS provider %s (%s) new=%v", p.Code, p.Name, isNew)
	}
	return created, nil
}

func (s *Service) Ping(ctx context.Context) error { return s.repo.Ping(ctx) }
