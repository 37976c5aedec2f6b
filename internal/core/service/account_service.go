package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
	"github.com/shivaccounts/accounts-api/internal/core/ports"
)

// AccountService manages the chart of accounts.
type AccountService struct {
	repo   ports.AccountRepository
	logger zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, logger: logger}
}

func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	return s.repo.List(ctx, "")
}

// ListByType filters by account type, matched case-insensitively.
func (s *AccountService) ListByType(ctx context.Context, accountType string) ([]domain.Account, error) {
	t, ok := domain.ParseAccountType(accountType)
	if !ok {
		return nil, domain.NewValidationError("type", "must be one of: Asset Liability Income Expense Equity")
	}
	return s.repo.List(ctx, t)
}

func (s *AccountService) Create(ctx context.Context, a domain.Account) (*domain.Account, error) {
	if err := normalizeAccount(&a); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("account_id", created.ID).Str("type", string(created.Type)).Msg("account created")
	return created, nil
}

func (s *AccountService) Update(ctx context.Context, id string, a domain.Account) (*domain.Account, error) {
	if err := normalizeAccount(&a); err != nil {
		return nil, err
	}
	a.ID = id
	return s.repo.Update(ctx, a)
}

func (s *AccountService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func normalizeAccount(a *domain.Account) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	t, ok := domain.ParseAccountType(string(a.Type))
	if !ok {
		return domain.NewValidationError("type", "must be one of: Asset Liability Income Expense Equity")
	}
	a.Type = t
	return nil
}
