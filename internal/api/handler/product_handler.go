package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shivaccounts/accounts-api/internal/core/ports"
)

type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /products.
//
// @Summary  List products
// @Tags     products
// @Produce  json
// @Success  200  {array}  domain.Product
// @Router   /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get handles GET /products/:id.
//
// @Summary  Get a product
// @Tags     products
// @Produce  json
// @Param    id   path      string  true  "Product id"
// @Success  200  {object}  domain.Product
// @Failure  404  {object}  errorResponse
// @Router   /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /products.
//
// @Summary  Create a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    body  body      createProductRequest  true  "Product"
// @Success  201   {object}  domain.Product
// @Failure  400   {object}  errorResponse
// @Failure  422   {object}  errorResponse
// @Router   /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.service.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// Update handles PUT /products/:id. Omitted fields are left unchanged.
//
// @Summary  Update a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    id    path      string                true  "Product id"
// @Param    body  body      updateProductRequest  true  "Fields to change"
// @Success  200   {object}  domain.Product
// @Failure  404   {object}  errorResponse
// @Failure  422   {object}  errorResponse
// @Router   /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /products/:id.
//
// @Summary  Delete a product
// @Tags     products
// @Param    id   path  string  true  "Product id"
// @Success  204
// @Failure  404  {object}  errorResponse
// @Router   /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
