package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workdesk-service/internal/domain"
)

// ProgramRepository manages programs and their account assignments.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program, accountIDs []int64) error
	Update(ctx context.Context, program *domain.Program, accountIDs []int64) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Program, error)
	List(ctx context.Context) ([]domain.Program, error)
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Program, error)
}

type programRepository struct {
	pool *pgxpool.Pool
}

// NewProgramRepository builds repository.
func NewProgramRepository(pool *pgxpool.Pool) ProgramRepository {
	return &programRepository{pool: pool}
}

func (r *programRepository) Create(ctx context.Context, program *domain.Program, accountIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO programs (title, description, status)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, query, program.Title, program.Description, program.Status).
		Scan(&program.ID, &program.CreatedAt, &program.UpdatedAt); err != nil {
		return err
	}
	for _, aid := range accountIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO program_assignments (program_id, account_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
			program.ID, aid); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *programRepository) Update(ctx context.Context, program *domain.Program, accountIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE programs SET title=$1, description=$2, status=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := tx.Exec(ctx, query, program.Title, program.Description, program.Status, program.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	if accountIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM program_assignments WHERE program_id=$1`, program.ID); err != nil {
			return err
		}
		for _, aid := range accountIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO program_assignments (program_id, account_id) VALUES ($1,$2)`,
				program.ID, aid); err != nil {
				return err
			}
		}
	}
	return tx.Commit(ctx)
}

func (r *programRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM programs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const programSelect = `
    SELECT id, title, description, status, created_at, updated_at
    FROM programs`

func (r *programRepository) GetByID(ctx context.Context, id int64) (*domain.Program, error) {
	var program domain.Program
	if err := r.pool.QueryRow(ctx, programSelect+` WHERE id=$1`, id).Scan(
		&program.ID,
		&program.Title,
		&program.Description,
		&program.Status,
		&program.CreatedAt,
		&program.UpdatedAt,
	); err != nil {
		return nil, err
	}
	assignments, err := r.assignments(ctx, program.ID)
	if err != nil {
		return nil, err
	}
	program.Assignments = assignments
	return &program, nil
}

func (r *programRepository) List(ctx context.Context) ([]domain.Program, error) {
	return r.listQuery(ctx, programSelect+` ORDER BY created_at DESC`)
}

func (r *programRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.Program, error) {
	const query = `
        SELECT p.id, p.title, p.description, p.status, p.created_at, p.updated_at
        FROM programs p
        JOIN program_assignments pa ON pa.program_id = p.id
        WHERE pa.account_id=$1 ORDER BY p.created_at DESC`
	return r.listQuery(ctx, query, accountID)
}

func (r *programRepository) listQuery(ctx context.Context, query string, args ...any) ([]domain.Program, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Program
	for rows.Next() {
		var program domain.Program
		if err := rows.Scan(
			&program.ID,
			&program.Title,
			&program.Description,
			&program.Status,
			&program.CreatedAt,
			&program.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, program)
	}
	return result, rows.Err()
}

func (r *programRepository) assignments(ctx context.Context, programID int64) ([]domain.ProgramAssignment, error) {
	const query = `
        SELECT pa.id, pa.program_id, pa.account_id, pa.created_at, pa.updated_at, a.fullname, a.email, a.image
        FROM program_assignments pa
        JOIN accounts a ON a.id = pa.account_id
        WHERE pa.program_id=$1`
	rows, err := r.pool.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ProgramAssignment
	for rows.Next() {
		var pa domain.ProgramAssignment
		var account domain.Account
		if err := rows.Scan(
			&pa.ID,
			&pa.ProgramID,
			&pa.AccountID,
			&pa.CreatedAt,
			&pa.UpdatedAt,
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
