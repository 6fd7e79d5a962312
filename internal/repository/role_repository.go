package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workdesk-service/internal/domain"
)

// RoleRepository manages roles and their feature sets.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role, featureIDs []int64) error
	Update(ctx context.Context, role *domain.Role, featureIDs []int64) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository returns a Postgres-backed implementation.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) Create(ctx context.Context, role *domain.Role, featureIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO roles (name, description)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, query, role.Name, role.Description).
		Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return err
	}
	if err := replaceRoleFeatures(ctx, tx, role.ID, featureIDs); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	role.Features, err = r.featuresForRole(ctx, role.ID)
	return err
}

func (r *roleRepository) Update(ctx context.Context, role *domain.Role, featureIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE roles SET name=$1, description=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := tx.Exec(ctx, query, role.Name, role.Description, role.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	if featureIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM role_features WHERE role_id=$1`, role.ID); err != nil {
			return err
		}
		if err := replaceRoleFeatures(ctx, tx, role.ID, featureIDs); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	role.Features, err = r.featuresForRole(ctx, role.ID)
	return err
}

func (r *roleRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roleRepository) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM roles WHERE id=$1`
	var role domain.Role
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&role.ID,
		&role.Name,
		&role.Description,
		&role.CreatedAt,
		&role.UpdatedAt,
	); err != nil {
		return nil, err
	}
	features, err := r.featuresForRole(ctx, role.ID)
	if err != nil {
		return nil, err
	}
	role.Features = features
	return &role, nil
}

func (r *roleRepository) List(ctx context.Context) ([]domain.Role, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM roles ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(
			&role.ID,
			&role.Name,
			&role.Description,
			&role.CreatedAt,
			&role.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		features, err := r.featuresForRole(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Features = features
	}
	return result, nil
}

func (r *roleRepository) featuresForRole(ctx context.Context, roleID int64) ([]domain.Feature, error) {
	const query = `
        SELECT f.id, f.name, f.description, f.created_at, f.updated_at
        FROM features f
        JOIN role_features rf ON rf.feature_id = f.id
        WHERE rf.role_id=$1 ORDER BY f.name ASC`
	rows, err := r.pool.Query(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFeatures(rows)
}

func replaceRoleFeatures(ctx context.Context, tx dbtx, roleID int64, featureIDs []int64) error {
	for _, fid := range featureIDs {
		const query = `
            INSERT INTO role_features (role_id, feature_id)
            VALUES ($1,$2) ON CONFLICT DO NOTHING`
		if _, err := tx.Exec(ctx, query, roleID, fid); err != nil {
			return err
		}
	}
	return nil
}
