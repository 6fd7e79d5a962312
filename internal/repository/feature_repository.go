package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workdesk-service/internal/domain"
)

// FeatureRepository manages capability flag persistence.
type FeatureRepository interface {
	Create(ctx context.Context, feature *domain.Feature) error
	Update(ctx context.Context, feature *domain.Feature) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Feature, error)
	List(ctx context.Context) ([]domain.Feature, error)
}

type featureRepository struct {
	pool *pgxpool.Pool
}

// NewFeatureRepository returns a Postgres-backed implementation.
func NewFeatureRepository(pool *pgxpool.Pool) FeatureRepository {
	return &featureRepository{pool: pool}
}

func (r *featureRepository) Create(ctx context.Context, feature *domain.Feature) error {
	const query = `
        INSERT INTO features (name, description)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, feature.Name, feature.Description).
		Scan(&feature.ID, &feature.CreatedAt, &feature.UpdatedAt)
}

func (r *featureRepository) Update(ctx context.Context, feature *domain.Feature) error {
	const query = `
        UPDATE features SET name=$1, description=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, feature.Name, feature.Description, feature.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *featureRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM features WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *featureRepository) GetByID(ctx context.Context, id int64) (*domain.Feature, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM features WHERE id=$1`
	var feature domain.Feature
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&feature.ID,
		&feature.Name,
		&feature.Description,
		&feature.CreatedAt,
		&feature.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &feature, nil
}

func (r *featureRepository) List(ctx context.Context) ([]domain.Feature, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM features ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFeatures(rows)
}

func scanFeatures(rows pgx.Rows) ([]domain.Feature, error) {
	var result []domain.Feature
	for rows.Next() {
		var feature domain.Feature
		if err := rows.Scan(
			&feature.ID,
			&feature.Name,
			&feature.Description,
			&feature.CreatedAt,
			&feature.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, feature)
	}
	return result, rows.Err()
}
