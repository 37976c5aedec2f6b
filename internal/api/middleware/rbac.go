package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
)

// RBAC admits requests whose role, as set by Auth, is one of allowed.
func RBAC(allowed ...domain.Role) echo.MiddlewareFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		set[string(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextKeyRole).(string)
			if _, ok := set[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
