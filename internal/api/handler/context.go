package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/shivaccounts/accounts-api/internal/api/middleware"
)

// requestID returns the id assigned by the RequestID middleware, if any.
func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// ctxUserID returns the subject set by the Auth middleware, or "" when the
// route is not behind it.
func ctxUserID(c echo.Context) string {
	id, _ := c.Get(middleware.ContextKeyUserID).(string)
	return id
}
