package ports

import (
	"context"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
)

// AuditRepository persists authentication audit events.
type AuditRepository interface {
	InsertAuthEvent(ctx context.Context, event domain.AuthEvent) error
}

// AuditRecorder accepts audit events without blocking the caller on I/O.
type AuditRecorder interface {
	Record(event domain.AuthEvent)
}

// NopAuditRecorder discards every event.
type NopAuditRecorder struct{}

func (NopAuditRecorder) Record(domain.AuthEvent) {}
