package ports

import (
	"context"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
)

type ContactRepository interface {
	List(ctx context.Context) ([]domain.Contact, error)
	Get(ctx context.Context, id string) (*domain.Contact, error)
	Create(ctx context.Context, c domain.Contact) (*domain.Contact, error)
	Update(ctx context.Context, c domain.Contact) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}

type ContactService interface {
	List(ctx context.Context) ([]domain.Contact, error)
	Get(ctx context.Context, id string) (*domain.Contact, error)
	Create(ctx context.Context, c domain.Contact) (*domain.Contact, error)
	Update(ctx context.Context, id string, patch domain.ContactPatch) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}
