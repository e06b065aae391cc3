package family

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/famsalud/famsalud/backend/api/internal/apperrors"
	"github.com/famsalud/famsalud/backend/api/internal/eps"
	"github.com/famsalud/famsalud/backend/api/internal/models"
)

var ErrNotFound = apperrors.NotFound("Family member not found")

// DeletedMessage is returned to clients after a successful delete.
const DeletedMessage = "Family member deleted successfully"

// Providers resolves EPS providers referenced by members.
type Providers interface {
	Get(ctx context.Context, id string) (*models.EpsProvider, error)
	Summaries(ctx context.Context, ids []string) (map[string]models.EpsProviderSummary, error)
}

// CreateInput is the body of a create request.
type CreateInput struct {
	EpsProviderID  *string              `json:"epsProviderId" binding:"omitempty,uuid"`
	FullName       string               `json:"fullName" binding:"required,min=2"`
	DocumentType   *models.DocumentType `json:"documentType" binding:"omitempty,oneof=CC TI CE PA RC PEP PPT"`
	DocumentNumber *string              `json:"documentNumber"`
	BirthDate      *string              `json:"birthDate" binding:"omitempty,isodate"`
	Address        *string              `json:"address"`
	Phone          *string              `json:"phone"`
	Cellphone      *string              `json:"cellphone"`
	Email          *string              `json:"email" binding:"omitempty,email"`
	Department     *string              `json:"department"`
	City           *string              `json:"city"`
	Regime         *string              `json:"regime"`
	Relationship   string               `json:"relationship" binding:"required,min=2"`
}

// UpdateInput is the body of a partial update; absent fields keep their value.
type UpdateInput struct {
	EpsProviderID  *string              `json:"epsProviderId" binding:"omitempty,uuid"`
	FullName       *string              `json:"fullName" binding:"omitempty,min=2"`
	DocumentType   *models.DocumentType `json:"documentType" binding:"omitempty,oneof=CC TI CE PA RC PEP PPT"`
	DocumentNumber *string              `json:"documentNumber"`
	BirthDate      *string              `json:"birthDate" binding:"omitempty,isodate"`
	Address        *string              `json:"address"`
	Phone          *string              `json:"phone"`
	Cellphone      *string              `json:"cellphone"`
	Email          *string              `json:"email" binding:"omitempty,email"`
	Department     *string              `json:"department"`
	City           *string              `json:"city"`
	Regime         *string              `json:"regime"`
	Relationship   *string              `json:"relationship" binding:"omitempty,min=2"`
}

func (in UpdateInput) patch() (models.FamilyMemberPatch, error) {
	p := models.FamilyMemberPatch{
		EpsProviderID:  in.EpsProviderID,
		FullName:       in.FullName,
		DocumentType:   in.DocumentType,
		DocumentNumber: in.DocumentNumber,
		Address:        in.Address,
		Phone:          in.Phone,
		Cellphone:      in.Cellphone,
		Email:          in.Email,
		Department:     in.Department,
		City:           in.City,
		Regime:         in.Regime,
		Relationship:   in.Relationship,
	}
	if in.BirthDate != nil {
		d, err := models.ParseDate(*in.BirthDate)
		if err != nil {
			return p, invalidBirthDate()
		}
		p.BirthDate = &d
	}
	return p, nil
}

func invalidBirthDate() error {
	return apperrors.Validation("Validation failed",
		apperrors.FieldError{Field: "birthDate", Message: "birthDate must be a valid ISO 8601 date string"})
}

type Service struct {
	repo      Repository
	providers Providers
}

func NewService(r Repository, p Providers) *Service {
	return &Service{repo: r, providers: p}
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*models.FamilyMember, error) {
	if in.DocumentType != nil && !in.DocumentType.Valid() {
		return nil, apperrors.Validation("Validation failed",
			apperrors.FieldError{Field: "documentType", Message: "documentType must be one of the following values: CC, TI, CE, PA, RC, PEP, PPT"})
	}
	m := &models.FamilyMember{
		ID:             uuid.NewString(),
		UserID:         userID,
		EpsProviderID:  in.EpsProviderID,
		FullName:       in.FullName,
		DocumentType:   in.DocumentType,
		DocumentNumber: in.DocumentNumber,
		Address:        in.Address,
		Phone:          in.Phone,
		Cellphone:      in.Cellphone,
		Email:          in.Email,
		Department:     in.Department,
		City:           in.City,
		Regime:         in.Regime,
		Relationship:   in.Relationship,
	}
	if in.BirthDate != nil {
		d, err := models.ParseDate(*in.BirthDate)
		if err != nil {
			return nil, invalidBirthDate()
		}
		m.BirthDate = &d
	}
	if err := s.attachProvider(ctx, m); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// List returns the user's members ordered by full name.
func (s *Service) List(ctx context.Context, userID string) ([]models.FamilyMember, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.FamilyMember{}
	}
	var ids []string
	for _, m := range list {
		if m.EpsProviderID != nil {
			ids = append(ids, *m.EpsProviderID)
		}
	}
	if len(ids) == 0 {
		return list, nil
	}
	summaries, err := s.providers.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if id := list[i].EpsProviderID; id != nil {
			if sum, ok := summaries[*id]; ok {
				list[i].EpsProvider = &sum
			}
		}
	}
	return list, nil
}

// Get returns a member owned by userID. Members of other users are reported as not found.
func (s *Service) Get(ctx context.Context, id, userID string) (*models.FamilyMember, error) {
	m, err := s.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	if m.EpsProviderID != nil {
		summaries, err := s.providers.Summaries(ctx, []string{*m.EpsProviderID})
		if err != nil {
			return nil, err
		}
		if sum, ok := summaries[*m.EpsProviderID]; ok {
			m.EpsProvider = &sum
		}
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, id, userID string, in UpdateInput) (*models.FamilyMember, error) {
	m, err := s.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	p, err := in.patch()
	if err != nil {
		return nil, err
	}
	p.Apply(m)
	if err := s.attachProvider(ctx, m); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Remove(ctx context.Context, id, userID string) error {
	m, err := s.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete family member: %w", err)
	}
	return nil
}

// attachProvider checks the referenced provider exists and sets its summary on m.
func (s *Service) attachProvider(ctx context.Context, m *models.FamilyMember) error {
	m.EpsProvider = nil
	if m.EpsProviderID == nil {
		return nil
	}
	p, err := s.providers.Get(ctx, *m.EpsProviderID)
	if err != nil {
		return err
	}
	sum := p.Summary()
	m.EpsProvider = &sum
	return nil
}

var _ Providers = (*eps.Service)(nil)
