package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workdesk-service/internal/domain"
)

// NotificationRepository manages in-app notifications. Mutations are scoped
// to the owning account so one inbox can never touch another.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, accountID int64) error
	Delete(ctx context.Context, id, accountID int64) error
	// PurgeRead removes read notifications created before the cutoff and
	// reports how many rows went away.
	PurgeRead(ctx context.Context, cutoff time.Time) (int64, error)
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository builds repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	const query = `
        INSERT INTO notifications (account_id, type, title, description, link, is_read)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		n.AccountID,
		n.Type,
		n.Title,
		n.Description,
		n.Link,
		n.IsRead,
	).Scan(&n.ID, &n.CreatedAt)
}

func (r *notificationRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.Notification, error) {
	const query = `
        SELECT id, account_id, type, title, description, link, is_read, created_at
        FROM notifications WHERE account_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID,
			&n.AccountID,
			&n.Type,
			&n.Title,
			&n.Description,
			&n.Link,
			&n.IsRead,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, accountID int64) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE notifications SET is_read=TRUE WHERE id=$1 AND account_id=$2`, id, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *notificationRepository) PurgeRead(ctx context.Context, cutoff time.Time) (int64, error) {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM notifications WHERE is_read=TRUE AND created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *notificationRepository) Delete(ctx context.Context, id, accountID int64) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM notifications WHERE id=$1 AND account_id=$2`, id, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
