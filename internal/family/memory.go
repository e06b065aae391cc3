package family

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/famsalud/famsalud/backend/api/internal/apperrors"
	"github.com/famsalud/famsalud/backend/api/internal/models"
)

// MemoryRepository keeps members in process memory.
type MemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]models.FamilyMember
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: map[string]models.FamilyMember{}}
}

func (r *MemoryRepository) Create(_ context.Context, m *models.FamilyMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(m)
	cp := *m
	cp.EpsProvider = nil
	r.byID[m.ID] = cp
	return nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID string) ([]models.FamilyMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.FamilyMember{}
	for _, m := range r.byID {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *MemoryRepository) GetForUser(_ context.Context, id, userID string) (*models.FamilyMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	if !ok || m.UserID != userID {
		return nil, nil
	}
	return &m, nil
}

func (r *MemoryRepository) Update(_ context.Context, m *models.FamilyMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[m.ID]; !ok {
		return apperrors.NotFound("Record not found")
	}
	m.UpdatedAt = time.Now().UTC()
	cp := *m
	cp.EpsProvider = nil
	r.byID[m.ID] = cp
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}
