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

const contactColumns = `id::text, name, email, phone, address, type, created_by::text, created_at`

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) ports.ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) List(ctx context.Context) ([]domain.Contact, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *ContactRepository) Get(ctx context.Context, id string) (*domain.Contact, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrContactNotFound
	}
	c, err := scanContact(r.pool.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("query contact: %w", err)
	}
	return c, nil
}

func (r *ContactRepository) Create(ctx context.Context, c domain.Contact) (*domain.Contact, error) {
	creator, ok := parseID(c.CreatedBy)
	if !ok {
		return nil, domain.NewValidationError("created_by", "is not a known user")
	}
	const q = `
		INSERT INTO contacts (id, name, email, phone, address, type, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + contactColumns

	created, err := scanContact(r.pool.QueryRow(ctx, q, uuid.New(), c.Name, c.Email, c.Phone, c.Address, string(c.Type), creator))
	if err != nil {
		if pgErrorCode(err) == foreignKeyViolation {
			return nil, domain.NewValidationError("created_by", "is not a known user")
		}
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	return created, nil
}

func (r *ContactRepository) Update(ctx context.Context, c domain.Contact) (*domain.Contact, error) {
	uid, ok := parseID(c.ID)
	if !ok {
		return nil, domain.ErrContactNotFound
	}
	const q = `
		UPDATE contacts SET name = $2, email = $3, phone = $4, address = $5, type = $6
		WHERE id = $1
		RETURNING ` + contactColumns

	updated, err := scanContact(r.pool.QueryRow(ctx, q, uid, c.Name, c.Email, c.Phone, c.Address, string(c.Type)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return updated, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	uid, ok := parseID(id)
	if !ok {
		return domain.ErrContactNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var (
		c     domain.Contact
		ctype string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &ctype, &c.CreatedBy, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Type = domain.ContactType(ctype)
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}
