package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workdesk-service/internal/domain"
)

// TaskEvidenceRepository manages evidence records and their image captures.
type TaskEvidenceRepository interface {
	Create(ctx context.Context, evidence *domain.TaskEvidence) error
	Update(ctx context.Context, evidence *domain.TaskEvidence) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.TaskEvidence, error)
	ListByTask(ctx context.Context, taskID int64) ([]domain.TaskEvidence, error)
	CreateImage(ctx context.Context, image *domain.TaskEvidenceImage) error
	UpdateImage(ctx context.Context, image *domain.TaskEvidenceImage) error
	DeleteImage(ctx context.Context, id int64) error
	ListImagesByProject(ctx context.Context, projectID int64) ([]domain.TaskEvidenceImage, error)
}

type taskEvidenceRepository struct {
	pool *pgxpool.Pool
}

// NewTaskEvidenceRepository builds repository.
func NewTaskEvidenceRepository(pool *pgxpool.Pool) TaskEvidenceRepository {
	return &taskEvidenceRepository{pool: pool}
}

func (r *taskEvidenceRepository) Create(ctx context.Context, evidence *domain.TaskEvidence) error {
	const query = `
        INSERT INTO task_evidences (task_id, account_id, image, description)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		evidence.TaskID,
		evidence.AccountID,
		evidence.Image,
		evidence.Description,
	).Scan(&evidence.ID, &evidence.CreatedAt, &evidence.UpdatedAt)
}

func (r *taskEvidenceRepository) Update(ctx context.Context, evidence *domain.TaskEvidence) error {
	const query = `
        UPDATE task_evidences SET image=$1, description=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, evidence.Image, evidence.Description, evidence.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskEvidenceRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM task_evidences WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskEvidenceRepository) GetByID(ctx context.Context, id int64) (*domain.TaskEvidence, error) {
	const query = `
        SELECT id, task_id, account_id, image, description, created_at, updated_at
        FROM task_evidences WHERE id=$1`
	var evidence domain.TaskEvidence
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&evidence.ID,
		&evidence.TaskID,
		&evidence.AccountID,
		&evidence.Image,
		&evidence.Description,
		&evidence.CreatedAt,
		&evidence.UpdatedAt,
	); err != nil {
		return nil, err
	}
	images, err := r.imagesForEvidence(ctx, evidence.ID)
	if err != nil {
		return nil, err
	}
	evidence.Images = images
	return &evidence, nil
}

func (r *taskEvidenceRepository) ListByTask(ctx context.Context, taskID int64) ([]domain.TaskEvidence, error) {
	const query = `
        SELECT id, task_id, account_id, image, description, created_at, updated_at
        FROM task_evidences WHERE task_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TaskEvidence
	for rows.Next() {
		var evidence domain.TaskEvidence
		if err := rows.Scan(
			&evidence.ID,
			&evidence.TaskID,
			&evidence.AccountID,
			&evidence.Image,
			&evidence.Description,
			&evidence.CreatedAt,
			&evidence.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, evidence)
	}
	return result, rows.Err()
}

func (r *taskEvidenceRepository) CreateImage(ctx context.Context, image *domain.TaskEvidenceImage) error {
	const query = `
        INSERT INTO task_evidence_images (task_evidence_id, account_id, base_image, image, date, latitude, longitude, description, is_export)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		image.TaskEvidenceID,
		image.AccountID,
		image.BaseImage,
		image.Image,
		image.Date,
		image.Latitude,
		image.Longitude,
		image.Description,
		image.IsExport,
	).Scan(&image.ID, &image.CreatedAt, &image.UpdatedAt)
}

func (r *taskEvidenceRepository) UpdateImage(ctx context.Context, image *domain.TaskEvidenceImage) error {
	const query = `
        UPDATE task_evidence_images SET base_image=$1, image=$2, date=$3, latitude=$4,
            longitude=$5, description=$6, is_export=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		image.BaseImage,
		image.Image,
		image.Date,
		image.Latitude,
		image.Longitude,
		image.Description,
		image.IsExport,
		image.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskEvidenceRepository) DeleteImage(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM task_evidence_images WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskEvidenceRepository) imagesForEvidence(ctx context.Context, evidenceID int64) ([]domain.TaskEvidenceImage, error) {
	const query = `
        SELECT id, task_evidence_id, account_id, base_image, image, date, latitude, longitude,
               description, is_export, created_at, updated_at
        FROM task_evidence_images WHERE task_evidence_id=$1 ORDER BY date ASC`
	rows, err := r.pool.Query(ctx, query, evidenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvidenceImages(rows)
}

// ListImagesByProject returns every capture under a project's tasks, used by
// the spreadsheet export.
func (r *taskEvidenceRepository) ListImagesByProject(ctx context.Context, projectID int64) ([]domain.TaskEvidenceImage, error) {
	const query = `
        SELECT i.id, i.task_evidence_id, i.account_id, i.base_image, i.image, i.date,
               i.latitude, i.longitude, i.description, i.is_export, i.created_at, i.updated_at
        FROM task_evidence_images i
        JOIN task_evidences e ON e.id = i.task_evidence_id
        JOIN tasks t ON t.id = e.task_id
        WHERE t.project_id=$1 ORDER BY i.date ASC`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvidenceImages(rows)
}

func scanEvidenceImages(rows pgx.Rows) ([]domain.TaskEvidenceImage, error) {
	var result []domain.TaskEvidenceImage
	for rows.Next() {
		var image domain.TaskEvidenceImage
		if err := rows.Scan(
			&image.ID,
			&image.TaskEvidenceID,
			&image.AccountID,
			&image.BaseImage,
			&image.Image,
			&image.Date,
			&image.Latitude,
			&image.Longitude,
			&image.Description,
			&image.IsExport,
			&image.CreatedAt,
			&image.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, image)
	}
	return result, rows.Err()
}
