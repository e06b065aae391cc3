package eps

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/famsalud/famsalud/backend/api/internal/database"
	"github.com/famsalud/famsalud/backend/api/internal/models"
)

const providerColumns = `id, name, code, parser_key, is_active, created_at, updated_at`

// PostgresRepository implements Repository on the eps_providers table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func scanProvider(row pgx.Row) (models.EpsProvider, error) {
	var p models.EpsProvider
	err := row.Scan(&p.ID, &p.Name, &p.Code, &p.ParserKey, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]models.EpsProvider, error) {
	return r.list(ctx, `SELECT `+providerColumns+` FROM eps_providers WHERE is_active ORDER BY name ASC`)
}

func (r *PostgresRepository) list(ctx context.Context, sql string, args ...any) ([]models.EpsProvider, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.EpsProvider{}
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.EpsProvider, error) {
	p, err := scanProvider(r.pool.QueryRow(ctx, `SELECT `+providerColumns+` FROM eps_providers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) GetMany(ctx context.Context, ids []string) (map[string]models.EpsProvider, error) {
	out := map[string]models.EpsProvider{}
	if len(ids) == 0 {
		return out, nil
	}
	list, err := r.list(ctx, `SELECT `+providerColumns+` FROM eps_providers WHERE id = ANY($1::text[]::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

func (r *PostgresRepository) UpsertByCode(ctx context.Context, p *models.EpsProvider) (bool, error) {
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	var inserted bool
	err := r.pool.QueryRow(ctx, `
		INSERT INTO eps_providers (id, name, code, parser_key, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (code) DO UPDATE
		SET name = EXCLUDED.name, parser_key = EXCLUDED.parser_key, updated_at = now()
		RETURNING id, (xmax = 0)`,
		id, p.Name, p.Code, p.ParserKey).Scan(&p.ID, &inserted)
	if err != nil {
		return false, database.TranslatePgError(err)
	}
	return inserted, nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
