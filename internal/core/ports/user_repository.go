package ports

import (
	"context"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
)

// UserRepository is the credential store. Create must rely on the store's
// unique constraints rather than a pre-check so concurrent signups race safely.
type UserRepository interface {
	// Create inserts a user and returns it with ID and CreatedAt populated.
	// Returns domain.ErrUserExists when login_id or email is taken.
	Create(ctx context.Context, user domain.NewUser) (*domain.User, error)
	// FindByLoginOrEmail matches key case-insensitively against login_id or email.
	FindByLoginOrEmail(ctx context.Context, key string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
