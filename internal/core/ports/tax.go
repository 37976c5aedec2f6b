package ports

import (
	"context"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
)

type TaxRepository interface {
	List(ctx context.Context, includeArchived bool) ([]domain.Tax, error)
	Get(ctx context.Context, id string) (*domain.Tax, error)
	Create(ctx context.Context, t domain.Tax) (*domain.Tax, error)
	Update(ctx context.Context, t domain.Tax) (*domain.Tax, error)
	// ToggleArchived flips the archived flag and returns the updated tax.
	ToggleArchived(ctx context.Context, id string) (*domain.Tax, error)
}

type TaxService interface {
	List(ctx context.Context, includeArchived bool) ([]domain.Tax, error)
	Create(ctx context.Context, t domain.Tax) (*domain.Tax, error)
	Update(ctx context.Context, id string, patch domain.TaxPatch) (*domain.Tax, error)
	ToggleArchived(ctx context.Context, id string) (*domain.Tax, error)
}
