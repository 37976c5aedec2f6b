package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shivaccounts/accounts-api/internal/core/ports"
)

type TaxHandler struct {
	service ports.TaxService
}

func NewTaxHandler(service ports.TaxService) *TaxHandler {
	return &TaxHandler{service: service}
}

// List handles GET /taxes. Archived taxes are hidden unless include_archived
// is true.
//
// @Summary  List taxes
// @Tags     taxes
// @Produce  json
// @Param    include_archived  query     bool  false  "Include archived taxes"
// @Success  200               {array}   domain.Tax
// @Failure  400               {object}  errorResponse
// @Router   /taxes [get]
func (h *TaxHandler) List(c echo.Context) error {
	includeArchived := false
	if raw := c.QueryParam("include_archived"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "include_archived must be a boolean")
		}
		includeArchived = v
	}

	taxes, err := h.service.List(c.Request().Context(), includeArchived)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taxes)
}

// Create handles POST /taxes.
//
// @Summary  Create a tax
// @Tags     taxes
// @Accept   json
// @Produce  json
// @Param    body  body      createTaxRequest  true  "Tax"
// @Success  201   {object}  domain.Tax
// @Failure  422   {object}  errorResponse
// @Router   /taxes [post]
func (h *TaxHandler) Create(c echo.Context) error {
	var req createTaxRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	t, err := h.service.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

// Update handles PUT /taxes/:id.
//
// @Summary  Update a tax
// @Tags     taxes
// @Accept   json
// @Produce  json
// @Param    id    path      string            true  "Tax id"
// @Param    body  body      updateTaxRequest  true  "Fields to change"
// @Success  200   {object}  domain.Tax
// @Failure  404   {object}  errorResponse
// @Failure  422   {object}  errorResponse
// @Router   /taxes/{id} [put]
func (h *TaxHandler) Update(c echo.Context) error {
	var req updateTaxRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	t, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// ToggleArchived handles DELETE /taxes/:id: archives an active tax or
// restores an archived one.
//
// @Summary  Archive or restore a tax
// @Tags     taxes
// @Produce  json
// @Param    id   path      string  true  "Tax id"
// @Success  200  {object}  domain.Tax
// @Failure  404  {object}  errorResponse
// @Router   /taxes/{id} [delete]
func (h *TaxHandler) ToggleArchived(c echo.Context) error {
	t, err := h.service.ToggleArchived(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}
