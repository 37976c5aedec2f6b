package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
	"github.com/shivaccounts/accounts-api/internal/core/ports"
)

type ContactService struct {
	repo   ports.ContactRepository
	logger zerolog.Logger
}

func NewContactService(repo ports.ContactRepository, logger zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, logger: logger}
}

func (s *ContactService) List(ctx context.Context) ([]domain.Contact, error) {
	return s.repo.List(ctx)
}

func (s *ContactService) Get(ctx context.Context, id string) (*domain.Contact, error) {
	return s.repo.Get(ctx, id)
}

func (s *ContactService) Create(ctx context.Context, c domain.Contact) (*domain.Contact, error) {
	normalizeContact(&c)
	if err := validateContact(&c); err != nil {
		return nil, err
	}
	if c.CreatedBy == "" {
		return nil, domain.NewValidationError("created_by", "is required")
	}
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("contact_id", created.ID).Str("type", string(created.Type)).Msg("contact created")
	return created, nil
}

func (s *ContactService) Update(ctx context.Context, id string, patch domain.ContactPatch) (*domain.Contact, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(current)
	normalizeContact(current)
	if err := validateContact(current); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, *current)
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func normalizeContact(c *domain.Contact) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*c.Email))
		c.Email = &e
		if e == "" {
			c.Email = nil
		}
	}
}

func validateContact(c *domain.Contact) error {
	if c.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if c.Type != domain.ContactCustomer && c.Type != domain.ContactVendor {
		return domain.NewValidationError("type", "must be one of: customer vendor")
	}
	return nil
}
