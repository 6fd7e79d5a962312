package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workdesk-service/internal/domain"
)

// ProjectRepository manages projects and their employee assignments.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project, accountIDs []int64) error
	Update(ctx context.Context, project *domain.Project, accountIDs []int64) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	ListByProgram(ctx context.Context, programID int64) ([]domain.Project, error)
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Project, error)
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository builds repository.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project, accountIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO projects (title, description, image, start_date, end_date, status, program_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, query,
		project.Title,
		project.Description,
		project.Image,
		project.StartDate,
		project.EndDate,
		project.Status,
		project.ProgramID,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt); err != nil {
		return err
	}
	for _, aid := range accountIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO project_assignments (project_id, account_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
			project.ID, aid); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project, accountIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE projects SET title=$1, description=$2, image=$3, start_date=$4,
            end_date=$5, status=$6, program_id=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := tx.Exec(ctx, query,
		project.Title,
		project.Description,
		project.Image,
		project.StartDate,
		project.EndDate,
		project.Status,
		project.ProgramID,
		project.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	if accountIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM project_assignments WHERE project_id=$1`, project.ID); err != nil {
			return err
		}
		for _, aid := range accountIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO project_assignments (project_id, account_id) VALUES ($1,$2)`,
				project.ID, aid); err != nil {
				return err
			}
		}
	}
	return tx.Commit(ctx)
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const projectSelect = `
    SELECT id, title, description, image, start_date, end_date, status, program_id, created_at, updated_at
    FROM projects`

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var project domain.Project
	if err := r.pool.QueryRow(ctx, projectSelect+` WHERE id=$1`, id).Scan(
		&project.ID,
		&project.Title,
		&project.Description,
		&project.Image,
		&project.StartDate,
		&project.EndDate,
		&project.Status,
		&project.ProgramID,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return nil, err
	}
	employees, err := r.employees(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	project.Employees = employees
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	return r.listQuery(ctx, projectSelect+` ORDER BY created_at DESC`)
}

func (r *projectRepository) ListByProgram(ctx context.Context, programID int64) ([]domain.Project, error) {
	return r.listQuery(ctx, projectSelect+` WHERE program_id=$1 ORDER BY created_at DESC`, programID)
}

func (r *projectRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.Project, error) {
	const query = `
        SELECT p.id, p.title, p.description, p.image, p.start_date, p.end_date, p.status, p.program_id, p.created_at, p.updated_at
        FROM projects p
        JOIN project_assignments pa ON pa.project_id = p.id
        WHERE pa.account_id=$1 ORDER BY p.created_at DESC`
	return r.listQuery(ctx, query, accountID)
}

func (r *projectRepository) listQuery(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Project
	for rows.Next() {
		var project domain.Project
		if err := rows.Scan(
			&project.ID,
			&project.Title,
			&project.Description,
			&project.Image,
			&project.StartDate,
			&project.EndDate,
			&project.Status,
			&project.ProgramID,
			&project.CreatedAt,
			&project.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, project)
	}
	return result, rows.Err()
}

func (r *projectRepository) employees(ctx context.Context, projectID int64) ([]domain.ProjectAssignment, error) {
	const query = `
        SELECT pa.id, pa.project_id, pa.account_id, pa.created_at, a.fullname, a.email, a.image
        FROM project_assignments pa
        JOIN accounts a ON a.id = pa.account_id
        WHERE pa.project_id=$1`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ProjectAssignment
	for rows.Next() {
		var pa domain.ProjectAssignment
		var account domain.Account
		if err := rows.Scan(
			&pa.ID,
			&pa.ProjectID,
			&pa.AccountID,
			&pa.CreatedAt,
			&account.Fullname,
			&account.Email,
			&account.Image,
		); err != nil {
			return nil, err
		}
		account.ID = pa.AccountID
		pa.Account = &account
		result = append(result, pa)
	}
	return result, rows.Err()
}
