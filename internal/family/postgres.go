package family

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/famsalud/famsalud/backend/api/internal/database"
	"github.com/famsalud/famsalud/backend/api/internal/models"
)

const memberColumns = `id, user_id, eps_provider_id, full_name, document_type, document_number, birth_date,
	address, phone, cellphone, email, department, city, regime, relationship, created_at, updated_at`

// PostgresRepository implements Repository on the family_members table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func scanMember(row pgx.Row) (models.FamilyMember, error) {
	var m models.FamilyMember
	var docType *string
	err := row.Scan(&m.ID, &m.UserID, &m.EpsProviderID, &m.FullName, &docType, &m.DocumentNumber, &m.BirthDate,
		&m.Address, &m.Phone, &m.Cellphone, &m.Email, &m.Department, &m.City, &m.Regime, &m.Relationship,
		&m.CreatedAt, &m.UpdatedAt)
	if docType != nil {
		dt := models.DocumentType(*docType)
		m.DocumentType = &dt
	}
	return m, err
}

func docTypeArg(d *models.DocumentType) *string {
	if d == nil {
		return nil
	}
	s := string(*d)
	return &s
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.FamilyMember) error {
	stamp(m)
	_, err := r.pool.Exec(ctx, `INSERT INTO family_members (`+memberColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		m.ID, m.UserID, m.EpsProviderID, m.FullName, docTypeArg(m.DocumentType), m.DocumentNumber, m.BirthDate,
		m.Address, m.Phone, m.Cellphone, m.Email, m.Department, m.City, m.Regime, m.Relationship,
		m.CreatedAt, m.UpdatedAt)
	return database.TranslatePgError(err)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.FamilyMember, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+memberColumns+` FROM family_members WHERE user_id = $1 ORDER BY full_name ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.FamilyMember{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetForUser(ctx context.Context, id, userID string) (*models.FamilyMember, error) {
	m, err := scanMember(r.pool.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM family_members WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) Update(ctx context.Context, m *models.FamilyMember) error {
	m.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `UPDATE family_members SET
		eps_provider_id = $2, full_name = $3, document_type = $4, document_number = $5, birth_date = $6,
		address = $7, phone = $8, cellphone = $9, email = $10, department = $11, city = $12, regime = $13,
		relationship = $14, updated_at = $15
		WHERE id = $1`,
		m.ID, m.EpsProviderID, m.FullName, docTypeArg(m.DocumentType), m.DocumentNumber, m.BirthDate,
		m.Address, m.Phone, m.Cellphone, m.Email, m.Department, m.City, m.Regime,
		m.Relationship, m.UpdatedAt)
	if err != nil {
		return database.TranslatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return database.TranslatePgError(pgx.ErrNoRows)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM family_members WHERE id = $1`, id)
	return database.TranslatePgError(err)
}
