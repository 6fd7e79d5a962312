package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workdesk-service/internal/domain"
)

// AccountRepository defines persistence access for accounts. Reads hydrate the
// role and its features so capability checks never need a second round trip.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (fullname, email, password_hash, image, phone_number, role_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		account.Fullname,
		account.Email,
		account.PasswordHash,
		account.Image,
		account.PhoneNumber,
		account.RoleID,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	const query = `
        UPDATE accounts SET fullname=$1, email=$2, password_hash=$3, image=$4,
            phone_number=$5, role_id=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		account.Fullname,
		account.Email,
		account.PasswordHash,
		account.Image,
		account.PhoneNumber,
		account.RoleID,
		account.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const accountSelect = `
    SELECT a.id, a.fullname, a.email, a.password_hash, a.image, a.phone_number,
           a.role_id, a.created_at, a.updated_at,
           r.id, r.name, r.description, r.created_at, r.updated_at
    FROM accounts a
    JOIN roles r ON r.id = a.role_id`

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.fetchSingle(ctx, accountSelect+` WHERE a.id=$1`, id)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.fetchSingle(ctx, accountSelect+` WHERE a.email=$1`, email)
}

func (r *accountRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Account, error) {
	account, err := scanAccount(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, err
	}
	features, err := r.roleFeatures(ctx, account.Role.ID)
	if err != nil {
		return nil, err
	}
	account.Role.Features = features
	return account, nil
}

func (r *accountRepository) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.pool.Query(ctx, accountSelect+` ORDER BY a.fullname ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		features, err := r.roleFeatures(ctx, result[i].Role.ID)
		if err != nil {
			return nil, err
		}
		result[i].Role.Features = features
	}
	return result, nil
}

func (r *accountRepository) roleFeatures(ctx context.Context, roleID int64) ([]domain.Feature, error) {
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

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	var role domain.Role
	if err := row.Scan(
		&account.ID,
		&account.Fullname,
		&account.Email,
		&account.PasswordHash,
		&account.Image,
		&account.PhoneNumber,
		&account.RoleID,
		&account.CreatedAt,
		&account.UpdatedAt,
		&role.ID,
		&role.Name,
		&role.Description,
		&role.CreatedAt,
		&role.UpdatedAt,
	); err != nil {
		return nil, err
	}
	account.Role = &role
	return &account, nil
}
