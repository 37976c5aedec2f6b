package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// maxBodyBytes caps request bodies; every payload here is a small JSON object.
const maxBodyBytes = 1 << 20

// StrictBinder decodes JSON bodies and rejects unknown fields, trailing data
// and non-JSON content types. Path and query parameters are read by handlers.
type StrictBinder struct{}

func NewBinder() *StrictBinder {
	return &StrictBinder{}
}

func (b *StrictBinder) Bind(i any, c echo.Context) error {
	req := c.Request()
	if req.Body == nil || req.ContentLength == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "request body is required")
	}
	ctype := req.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "content type must be application/json")
	}

	dec := json.NewDecoder(io.LimitReader(req.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, decodeMessage(err)).SetInternal(err)
	}
	if dec.More() {
		return echo.NewHTTPError(http.StatusBadRequest, "request body must contain a single JSON object")
	}
	return nil
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return "invalid value for field " + typeErr.Field
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return "unknown field " + strings.TrimPrefix(err.Error(), "json: unknown field ")
	default:
		return "malformed JSON body"
	}
}

// bindAndValidate binds the body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
