package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
	"github.com/shivaccounts/accounts-api/internal/core/ports"
)

type TaxService struct {
	repo   ports.TaxRepository
	logger zerolog.Logger
}

func NewTaxService(repo ports.TaxRepository, logger zerolog.Logger) *TaxService {
	return &TaxService{repo: repo, logger: logger}
}

func (s *TaxService) List(ctx context.Context, includeArchived bool) ([]domain.Tax, error) {
	return s.repo.List(ctx, includeArchived)
}

func (s *TaxService) Create(ctx context.Context, t domain.Tax) (*domain.Tax, error) {
	t.Name = strings.TrimSpace(t.Name)
	t.Archived = false
	if err := t.Validate(); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("tax_id", created.ID).Str("name", created.Name).Msg("tax created")
	return created, nil
}

func (s *TaxService) Update(ctx context.Context, id string, patch domain.TaxPatch) (*domain.Tax, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(current)
	current.Name = strings.TrimSpace(current.Name)
	if err := current.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, *current)
}

// ToggleArchived archives an active tax or restores an archived one.
func (s *TaxService) ToggleArchived(ctx context.Context, id string) (*domain.Tax, error) {
	t, err := s.repo.ToggleArchived(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("tax_id", t.ID).Bool("archived", t.Archived).Msg("tax archive toggled")
	return t, nil
}
