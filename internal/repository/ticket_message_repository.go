package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workdesk-service/internal/domain"
)

// TicketMessageRepository manages conversation entries.
type TicketMessageRepository interface {
	Create(ctx context.Context, msg *domain.TicketMessage) error
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.TicketMessage, error)
}

type ticketMessageRepository struct {
	pool *pgxpool.Pool
}

// NewTicketMessageRepository builds repository.
func NewTicketMessageRepository(pool *pgxpool.Pool) TicketMessageRepository {
	return &ticketMessageRepository{pool: pool}
}

func (r *ticketMessageRepository) Create(ctx context.Context, msg *domain.TicketMessage) error {
	return insertTicketMessage(ctx, r.pool, msg)
}

func insertTicketMessage(ctx context.Context, db dbtx, msg *domain.TicketMessage) error {
	const query = `
        INSERT INTO ticket_messages (ticket_id, account_id, content, image, kind)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return db.QueryRow(ctx, query,
		msg.TicketID,
		msg.AccountID,
		msg.Content,
		msg.Image,
		msg.Kind,
	).Scan(&msg.ID, &msg.CreatedAt, &msg.UpdatedAt)
}

// ListByTicket returns the persisted history in creation order, each entry
// hydrated with its author account and role name for transcript rendering.
func (r *ticketMessageRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.TicketMessage, error) {
	const query = `
        SELECT m.id, m.ticket_id, m.account_id, m.content, m.image, m.kind,
               m.created_at, m.updated_at,
               a.fullname, a.email, a.image, r.name
        FROM ticket_messages m
        JOIN accounts a ON a.id = m.account_id
        JOIN roles r ON r.id = a.role_id
        WHERE m.ticket_id=$1 ORDER BY m.created_at ASC, m.id ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketMessage
	for rows.Next() {
		var msg domain.TicketMessage
		var account domain.Account
		var role domain.Role
		if err := rows.Scan(
			&msg.ID,
			&msg.TicketID,
			&msg.AccountID,
			&msg.Content,
			&msg.Image,
			&msg.Kind,
			&msg.CreatedAt,
			&msg.UpdatedAt,
			&account.Fullname,
			&account.Email,
			&account.Image,
			&role.Name,
		); err != nil {
			return nil, err
		}
		account.ID = msg.AccountID
		account.Role = &role
		msg.Account = &account
		result = append(result, msg)
	}
	return result, rows.Err()
}
