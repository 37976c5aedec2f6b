package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
	"github.com/shivaccounts/accounts-api/internal/core/ports"
)

// AccountHandler serves the chart of accounts under /coa.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// @Summary  List accounts
// @Tags     coa
// @Produce  json
// @Success  200  {array}  domain.Account
// @Router   /coa [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// ListByType handles GET /coa/by-type/:type. The type is matched
// case-insensitively.
//
// @Summary  List accounts of one type
// @Tags     coa
// @Produce  json
// @Param    type  path      string  true  "Asset, Liability, Income, Expense or Equity"
// @Success  200   {array}   domain.Account
// @Failure  422   {object}  errorResponse
// @Router   /coa/by-type/{type} [get]
func (h *AccountHandler) ListByType(c echo.Context) error {
	accounts, err := h.service.ListByType(c.Request().Context(), c.Param("type"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// @Summary  Create an account
// @Tags     coa
// @Accept   json
// @Produce  json
// @Param    body  body      accountRequest  true  "Account"
// @Success  201   {object}  domain.Account
// @Failure  422   {object}  errorResponse
// @Router   /coa [post]
func (h *AccountHandler) Create(c echo.Context) error {
	var req accountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	a, err := h.service.Create(c.Request().Context(), domain.Account{
		Name: req.Name,
		Type: domain.AccountType(req.Type),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// @Summary  Replace an account
// @Tags     coa
// @Accept   json
// @Produce  json
// @Param    id    path      string          true  "Account id"
// @Param    body  body      accountRequest  true  "Account"
// @Success  200   {object}  domain.Account
// @Failure  404   {object}  errorResponse
// @Router   /coa/{id} [put]
func (h *AccountHandler) Update(c echo.Context) error {
	var req accountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	a, err := h.service.Update(c.Request().Context(), c.Param("id"), domain.Account{
		Name: req.Name,
		Type: domain.AccountType(req.Type),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// @Summary  Delete an account
// @Tags     coa
// @Param    id   path  string  true  "Account id"
// @Success  204
// @Failure  404  {object}  errorResponse
// @Router   /coa/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
