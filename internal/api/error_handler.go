package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
)

// Fixed client messages. Credential and token failures share one message each
// so callers cannot tell an unknown identity from a wrong password.
const (
	msgUserExists         = "email or login_id already exists"
	msgInvalidCredentials = "invalid credentials"
	msgInvalidToken       = "invalid or expired token"
	msgTooManyAttempts    = "too many failed login attempts, try again later"
	msgInternal           = "internal server error"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler maps domain errors to status codes and renders
// {"error": "<message>"}. Unexpected errors are logged and hidden behind a
// generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if code == http.StatusUnauthorized && errors.Is(err, domain.ErrInvalidToken) {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer`)
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors: bind and validation failures, unknown routes.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Int("status", he.Code).Str("path", c.Path()).Msg("request rejected")
		}
		if s, ok := he.Message.(string); ok {
			return he.Code, s
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ve.Error()
	}

	switch {
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, msgUserExists
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, msgInvalidToken
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, msgTooManyAttempts
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrTaxNotFound),
		errors.Is(err, domain.ErrContactNotFound),
		errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, notFoundMessage(err)
	case errors.Is(err, domain.ErrPaymentUnavailable):
		return http.StatusServiceUnavailable, domain.ErrPaymentUnavailable.Error()
	case errors.Is(err, domain.ErrPaymentFailed):
		log.Warn().Err(err).Str("path", c.Path()).Msg("payment gateway error")
		return http.StatusBadGateway, domain.ErrPaymentFailed.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, msgInternal
}

// notFoundMessage returns the text of the first not-found sentinel in err, so
// wrapped errors never leak their context.
func notFoundMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrUserNotFound,
		domain.ErrProductNotFound,
		domain.ErrTaxNotFound,
		domain.ErrContactNotFound,
		domain.ErrAccountNotFound,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "not found"
}
