package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
	"github.com/shivaccounts/accounts-api/internal/core/ports"
)

type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := validateProduct(&p); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("product_id", created.ID).Msg("product created")
	return created, nil
}

// Update applies patch to the stored product. Fields absent from the patch keep
// their current values.
func (s *ProductService) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(current)
	current.Name = strings.TrimSpace(current.Name)
	if err := validateProduct(current); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, *current)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validateProduct(p *domain.Product) error {
	if p.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if p.Type != domain.ProductGoods && p.Type != domain.ProductService {
		return domain.NewValidationError("type", "must be one of: goods service")
	}
	prices := []struct {
		field string
		v     *float64
	}{{"sales_price", p.SalesPrice}, {"purchase_price", p.PurchasePrice}}
	for _, f := range prices {
		if f.v != nil && *f.v < 0 {
			return domain.NewValidationError(f.field, "must be greater than or equal to 0")
		}
		if f.v != nil && *f.v > domain.MaxAmount {
			return domain.NewValidationError(f.field, "must be at most 9999999999.99")
		}
	}
	rates := []struct {
		field string
		v     *float64
	}{{"sales_tax", p.SalesTax}, {"purchase_tax", p.PurchaseTax}}
	for _, f := range rates {
		if f.v != nil && (*f.v < 0 || *f.v > 100) {
			return domain.NewValidationError(f.field, "must be between 0 and 100")
		}
	}
	return nil
}
