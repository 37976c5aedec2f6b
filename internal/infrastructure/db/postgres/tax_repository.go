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

const taxColumns = `id::text, name, method, applies_to, value::float8, archived, created_at`

type TaxRepository struct {
	pool *pgxpool.Pool
}

func NewTaxRepository(pool *pgxpool.Pool) ports.TaxRepository {
	return &TaxRepository{pool: pool}
}

// List returns active taxes, plus archived ones when includeArchived is set.
func (r *TaxRepository) List(ctx context.Context, includeArchived bool) ([]domain.Tax, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taxColumns+`
		FROM taxes
		WHERE $1 OR NOT archived
		ORDER BY created_at, id`, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("query taxes: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Tax, 0)
	for rows.Next() {
		t, err := scanTax(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tax: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *TaxRepository) Get(ctx context.Context, id string) (*domain.Tax, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrTaxNotFound
	}
	return r.one(ctx, "query tax", `SELECT `+taxColumns+` FROM taxes WHERE id = $1`, uid)
}

func (r *TaxRepository) Create(ctx context.Context, t domain.Tax) (*domain.Tax, error) {
	const q = `
		INSERT INTO taxes (id, name, method, applies_to, value, archived)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taxColumns

	created, err := scanTax(r.pool.QueryRow(ctx, q, uuid.New(), t.Name, string(t.Method), string(t.AppliesTo), t.Value, t.Archived))
	if err != nil {
		if ve := outOfRange(err, "value"); ve != nil {
			return nil, ve
		}
		return nil, fmt.Errorf("insert tax: %w", err)
	}
	return created, nil
}

func (r *TaxRepository) Update(ctx context.Context, t domain.Tax) (*domain.Tax, error) {
	uid, ok := parseID(t.ID)
	if !ok {
		return nil, domain.ErrTaxNotFound
	}
	return r.one(ctx, "update tax", `
		UPDATE taxes SET name = $2, method = $3, applies_to = $4, value = $5
		WHERE id = $1
		RETURNING `+taxColumns,
		uid, t.Name, string(t.Method), string(t.AppliesTo), t.Value)
}

// ToggleArchived flips the archived flag in a single statement.
func (r *TaxRepository) ToggleArchived(ctx context.Context, id string) (*domain.Tax, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrTaxNotFound
	}
	return r.one(ctx, "toggle tax", `
		UPDATE taxes SET archived = NOT archived
		WHERE id = $1
		RETURNING `+taxColumns, uid)
}

func (r *TaxRepository) one(ctx context.Context, op, q string, args ...any) (*domain.Tax, error) {
	t, err := scanTax(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaxNotFound
		}
		if ve := outOfRange(err, "value"); ve != nil {
			return nil, ve
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

func scanTax(row pgx.Row) (*domain.Tax, error) {
	var (
		t                 domain.Tax
		method, appliesTo string
	)
	if err := row.Scan(&t.ID, &t.Name, &method, &appliesTo, &t.Value, &t.Archived, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Method = domain.TaxMethod(method)
	t.AppliesTo = domain.TaxScope(appliesTo)
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}
