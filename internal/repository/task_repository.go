package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workdesk-service/internal/domain"
)

// TaskRepository manages project tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	// CreateBatch inserts a set of tasks in one transaction (bulk generate).
	CreateBatch(ctx context.Context, tasks []*domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.Task, error)
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository builds repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

const taskInsert = `
    INSERT INTO tasks (type, item, quantity, description, project_id)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id, created_at, updated_at`

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.pool.QueryRow(ctx, taskInsert,
		task.Type,
		task.Item,
		task.Quantity,
		task.Description,
		task.ProjectID,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) CreateBatch(ctx context.Context, tasks []*domain.Task) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, task := range tasks {
		if err := tx.QueryRow(ctx, taskInsert,
			task.Type,
			task.Item,
			task.Quantity,
			task.Description,
			task.ProjectID,
		).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	const query = `
        UPDATE tasks SET type=$1, item=$2, quantity=$3, description=$4, project_id=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		task.Type,
		task.Item,
		task.Quantity,
		task.Description,
		task.ProjectID,
		task.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const taskSelect = `
    SELECT id, type, item, quantity, description, project_id, created_at, updated_at
    FROM tasks`

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task
	if err := r.pool.QueryRow(ctx, taskSelect+` WHERE id=$1`, id).Scan(
		&task.ID,
		&task.Type,
		&task.Item,
		&task.Quantity,
		&task.Description,
		&task.ProjectID,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context) ([]domain.Task, error) {
	return r.listQuery(ctx, taskSelect+` ORDER BY created_at DESC`)
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Task, error) {
	return r.listQuery(ctx, taskSelect+` WHERE project_id=$1 ORDER BY created_at ASC`, projectID)
}

func (r *taskRepository) listQuery(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.Type,
			&task.Item,
			&task.Quantity,
			&task.Description,
			&task.ProjectID,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	return result, rows.Err()
}
