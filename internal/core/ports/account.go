package ports

import (
	"context"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
)

// AccountRepository persists the chart of accounts. An empty accountType in
// List means no filter.
type AccountRepository interface {
	List(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error)
	Create(ctx context.Context, a domain.Account) (*domain.Account, error)
	Update(ctx context.Context, a domain.Account) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
}

type AccountService interface {
	List(ctx context.Context) ([]domain.Account, error)
	ListByType(ctx context.Context, accountType string) ([]domain.Account, error)
	Create(ctx context.Context, a domain.Account) (*domain.Account, error)
	Update(ctx context.Context, id string, a domain.Account) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
}
