package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
	"github.com/shivaccounts/accounts-api/internal/core/ports"
)

const accountColumns = `id::text, name, type, created_at`

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) ports.AccountRepository {
	return &AccountRepository{pool: pool}
}

// List returns the chart of accounts, restricted to accountType unless it is
// empty.
func (r *AccountRepository) List(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE $1 = '' OR type = $1
		ORDER BY type, name, id`, string(accountType))
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *AccountRepository) Create(ctx context.Context, a domain.Account) (*domain.Account, error) {
	created, err := scanAccount(r.pool.QueryRow(ctx, `
		INSERT INTO accounts (id, name, type) VALUES ($1, $2, $3)
		RETURNING `+accountColumns, uuid.New(), a.Name, string(a.Type)))
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return created, nil
}

func (r *AccountRepository) Update(ctx context.Context, a domain.Account) (*domain.Account, error) {
	uid, ok := parseID(a.ID)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	updated, err := scanAccount(r.pool.QueryRow(ctx, `
		UPDATE accounts SET name = $2, type = $3 WHERE id = $1
		RETURNING `+accountColumns, uid, a.Name, string(a.Type)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("update account: %w", err)
	}
	return updated, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	uid, ok := parseID(id)
	if !ok {
		return domain.ErrAccountNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a     domain.Account
		atype string
	)
	if err := row.Scan(&a.ID, &a.Name, &atype, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Type = domain.AccountType(atype)
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}
