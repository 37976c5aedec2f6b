package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	if !isUniqueViolation(dup) {
		t.Fatalf("expected unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert user: %w", dup)) {
		t.Fatalf("expected wrapped unique violation to match")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("foreign key violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("connection reset")) {
		t.Fatalf("plain error is not a unique violation")
	}
}

func TestOutOfRange(t *testing.T) {
	overflow := fmt.Errorf("insert tax: %w", &pgconn.PgError{Code: "22003", Message: "numeric field overflow"})

	var ve *domain.ValidationError
	if err := outOfRange(overflow, "value"); !errors.As(err, &ve) || ve.Field != "value" {
		t.Fatalf("expected ValidationError on value, got %v", err)
	}
	if err := outOfRange(&pgconn.PgError{Code: "23505"}, "value"); err != nil {
		t.Fatalf("unique violation is not a range error, got %v", err)
	}
	if err := outOfRange(errors.New("connection reset"), "value"); err != nil {
		t.Fatalf("plain error is not a range error, got %v", err)
	}
}

func TestParseID(t *testing.T) {
	if _, ok := parseID("6f1c1a52-3b8e-4c1d-9a1f-2b7e0d4c9e11"); !ok {
		t.Fatalf("expected valid uuid")
	}
	for _, bad := range []string{"", "1", "user-1", "6f1c1a52-3b8e-4c1d-9a1f"} {
		if _, ok := parseID(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	if len(entries) < 2 {
		t.Fatalf("expected embedded migrations, got %d", len(entries))
	}
}
