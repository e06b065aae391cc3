package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/famsalud/famsalud/backend/api/internal/apperrors"
	"github.com/famsalud/famsalud/backend/api/internal/models"
)

// ErrEmailTaken is returned by Create when the email is already registered.
var ErrEmailTaken = apperrors.Conflict("A user with this email already exists")

// Service encapsulates user-related business logic
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Create stores a new active user with an already-hashed password.
// The pre-check gives a friendly message; a race past it still fails on the
// store's unique constraint and surfaces as Conflict.
func (s *Service) Create(ctx context.Context, email, passwordHash, fullName string) (*models.User, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if apperrors.KindOf(err) == apperrors.KindConflict {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) Ping(ctx context.Context) error { return s.repo.Ping(ctx) }

