package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workdesk-service/internal/domain"
)

// DailyReportRepository manages daily reports and their evidence entries.
type DailyReportRepository interface {
	Create(ctx context.Context, report *domain.DailyReport) error
	Update(ctx context.Context, report *domain.DailyReport) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.DailyReport, error)
	List(ctx context.Context) ([]domain.DailyReport, error)
	ListByAccount(ctx context.Context, accountID int64) ([]domain.DailyReport, error)
	ListEvidenceByDate(ctx context.Context, day time.Time) ([]domain.DailyReportEvidence, error)
}

type dailyReportRepository struct {
	pool *pgxpool.Pool
}

// NewDailyReportRepository builds repository.
func NewDailyReportRepository(pool *pgxpool.Pool) DailyReportRepository {
	return &dailyReportRepository{pool: pool}
}

func (r *dailyReportRepository) Create(ctx context.Context, report *domain.DailyReport) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO daily_reports (title, description, account_id)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, query, report.Title, report.Description, report.AccountID).
		Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt); err != nil {
		return err
	}
	for i := range report.Evidences {
		ev := &report.Evidences[i]
		ev.DailyReportID = report.ID
		const evQuery = `
            INSERT INTO daily_report_evidences (daily_report_id, image, description, latitude, longitude, address, captured_at)
            VALUES ($1,$2,$3,$4,$5,$6,$7)
            RETURNING id, created_at`
		if err := tx.QueryRow(ctx, evQuery,
			ev.DailyReportID,
			ev.Image,
			ev.Description,
			ev.Latitude,
			ev.Longitude,
			ev.Address,
			ev.CapturedAt,
		).Scan(&ev.ID, &ev.CreatedAt); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *dailyReportRepository) Update(ctx context.Context, report *domain.DailyReport) error {
	const query = `
        UPDATE daily_reports SET title=$1, description=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, report.Title, report.Description, report.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *dailyReportRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM daily_reports WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const dailyReportSelect = `
    SELECT r.id, r.title, r.description, r.account_id, r.created_at, r.updated_at, a.fullname, a.email, a.image
    FROM daily_reports r
    JOIN accounts a ON a.id = r.account_id`

func (r *dailyReportRepository) GetByID(ctx context.Context, id int64) (*domain.DailyReport, error) {
	report, err := scanDailyReport(r.pool.QueryRow(ctx, dailyReportSelect+` WHERE r.id=$1`, id))
	if err != nil {
		return nil, err
	}
	evidences, err := r.evidencesForReport(ctx, report.ID)
	if err != nil {
		return nil, err
	}
	report.Evidences = evidences
	return report, nil
}

func (r *dailyReportRepository) List(ctx context.Context) ([]domain.DailyReport, error) {
	return r.listQuery(ctx, dailyReportSelect+` ORDER BY r.created_at DESC`)
}

func (r *dailyReportRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.DailyReport, error) {
	return r.listQuery(ctx, dailyReportSelect+` WHERE r.account_id=$1 ORDER BY r.created_at DESC`, accountID)
}

func (r *dailyReportRepository) listQuery(ctx context.Context, query string, args ...any) ([]domain.DailyReport, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DailyReport
	for rows.Next() {
		report, err := scanDailyReport(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *report)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		evidences, err := r.evidencesForReport(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Evidences = evidences
	}
	return result, nil
}

func (r *dailyReportRepository) evidencesForReport(ctx context.Context, reportID int64) ([]domain.DailyReportEvidence, error) {
	const query = `
        SELECT id, daily_report_id, image, description, latitude, longitude, address, captured_at, created_at
        FROM daily_report_evidences WHERE daily_report_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDailyEvidences(rows)
}

// ListEvidenceByDate returns evidence entries captured on the given day,
// used by the daily report spreadsheet export.
func (r *dailyReportRepository) ListEvidenceByDate(ctx context.Context, day time.Time) ([]domain.DailyReportEvidence, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24 * time.Hour)
	const query = `
        SELECT id, daily_report_id, image, description, latitude, longitude, address, captured_at, created_at
        FROM daily_report_evidences
        WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDailyEvidences(rows)
}

func scanDailyReport(row pgx.Row) (*domain.DailyReport, error) {
	var report domain.DailyReport
	var account domain.Account
	if err := row.Scan(
		&report.ID,
		&report.Title,
		&report.Description,
		&report.AccountID,
		&report.CreatedAt,
		&report.UpdatedAt,
		&account.Fullname,
		&account.Email,
		&account.Image,
	); err != nil {
		return nil, err
	}
	account.ID = report.AccountID
	report.Account = &account
	return &report, nil
}

func scanDailyEvidences(rows pgx.Rows) ([]domain.DailyReportEvidence, error) {
	var result []domain.DailyReportEvidence
	for rows.Next() {
		var ev domain.DailyReportEvidence
		if err := rows.Scan(
			&ev.ID,
			&ev.DailyReportID,
			&ev.Image,
			&ev.Description,
			&ev.Latitude,
			&ev.Longitude,
			&ev.Address,
			&ev.CapturedAt,
			&ev.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ev)
	}
	return result, rows.Err()
}
