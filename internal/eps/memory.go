package eps

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/famsalud/famsalud/backend/api/internal/models"
)

// MemoryRepository keeps providers in process memory.
type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]models.EpsProvider
	byCode map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: map[string]models.EpsProvider{}, byCode: map[string]string{}}
}

func (r *MemoryRepository) ListActive(context.Context) ([]models.EpsProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.EpsProvider{}
	for _, p := range r.byID {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.EpsProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *MemoryRepository) GetMany(_ context.Context, ids []string) (map[string]models.EpsProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := map[string]models.EpsProvider{}
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *MemoryRepository) UpsertByCode(_ context.Context, p *models.EpsProvider) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if id, ok := r.byCode[p.Code]; ok {
		cur := r.byID[id]
		cur.Name, cur.ParserKey, cur.UpdatedAt = p.Name, p.ParserKey, now
		r.byID[id] = cur
		p.ID = id
		return false, nil
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.byID[p.ID] = models.EpsProvider{
		ID: p.ID, Name: p.Name, Code: p.Code, ParserKey: p.ParserKey,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	r.byCode[p.Code] = p.ID
	return true, nil
}

// SetActive toggles a provider; deactivation is an administrative operation without an endpoint.
func (r *MemoryRepository) SetActive(id string, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.byID[id]; ok {
		p.IsActive = active
		r.byID[id] = p
	}
}

func (r *MemoryRepository) Ping(context.Context) error { return nil }
