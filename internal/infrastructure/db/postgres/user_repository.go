package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
	"github.com/shivaccounts/accounts-api/internal/core/ports"
)

const userColumns = `user_id::text, name, login_id, email, password, role, created_at`

// UserRepository implements ports.UserRepository on the users table.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) ports.UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts u with a fresh id. The UNIQUE constraints on login_id and
// email decide races between concurrent signups; the loser gets
// domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, u domain.NewUser) (*domain.User, error) {
	const q = `
		INSERT INTO users (user_id, name, login_id, email, password, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	row := r.pool.QueryRow(ctx, q, uuid.New(), u.Name, u.LoginID, u.Email, u.PasswordHash, string(u.Role))
	user, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// FindByLoginOrEmail matches key against login_id or email. A login_id match
// wins when key is one user's login_id and another's email.
func (r *UserRepository) FindByLoginOrEmail(ctx context.Context, key string) (*domain.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE login_id = $1 OR email = $1
		ORDER BY (login_id = $1) DESC
		LIMIT 1`

	user, err := scanUser(r.pool.QueryRow(ctx, q, strings.ToLower(strings.TrimSpace(key))))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user by key: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	const q = `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, q, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.LoginID, &u.Email, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
