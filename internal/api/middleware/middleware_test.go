package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shivaccounts/accounts-api/internal/api/middleware"
	"github.com/shivaccounts/accounts-api/internal/core/domain"
	"github.com/shivaccounts/accounts-api/internal/infrastructure/security"
)

func newJWT(t *testing.T) *security.JWTService {
	t.Helper()
	s, err := security.NewJWTService("secret", time.Hour)
	if err != nil {
		t.Fatalf("new jwt service: %v", err)
	}
	return s
}

func runAuth(t *testing.T, header string, next echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, middleware.Auth(newJWT(t))(next)(c)
}

func TestAuth_ValidToken(t *testing.T) {
	token, _, err := newJWT(t).Issue("user-1", domain.IdentityClaims{
		Email: "ann@x.com",
		Role:  domain.RoleAdmin,
		Name:  "Ann",
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	called := false
	rec, err := runAuth(t, "Bearer "+token, func(c echo.Context) error {
		called = true
		if c.Get(middleware.ContextKeyUserID) != "user-1" {
			t.Fatalf("user_id not set")
		}
		if c.Get(middleware.ContextKeyRole) != "admin" {
			t.Fatalf("role not set")
		}
		if c.Get(middleware.ContextKeyEmail) != "ann@x.com" || c.Get(middleware.ContextKeyName) != "Ann" {
			t.Fatalf("identity claims not set")
		}
		return c.NoContent(http.StatusOK)
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected next to run with 200, got %d", rec.Code)
	}
}

func TestAuth_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token abc",
		"no token":       "Bearer ",
		"garbage":        "Bearer not-a-token",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := runAuth(t, header, func(echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})
			if !errors.Is(err, domain.ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestBearerToken_SchemeIsCaseInsensitive(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "bearer abc.def.ghi")
	token, ok := middleware.BearerToken(req)
	if !ok || token != "abc.def.ghi" {
		t.Fatalf("unexpected token %q %v", token, ok)
	}
}

func TestRBAC(t *testing.T) {
	mw := middleware.RBAC(domain.RoleAdmin, domain.RoleInvoicingUser)

	for role, allowed := range map[string]bool{
		"admin":          true,
		"invoicing_user": true,
		"guest":          false,
		"":               false,
	} {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if role != "" {
			c.Set(middleware.ContextKeyRole, role)
		}

		called := false
		err := mw(func(echo.Context) error {
			called = true
			return nil
		})(c)

		if allowed && (err != nil || !called) {
			t.Fatalf("role %q should pass, got %v", role, err)
		}
		if !allowed && !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("role %q should be forbidden, got %v", role, err)
		}
	}
}
