package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
	"github.com/shivaccounts/accounts-api/internal/core/ports"
)

type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// @Summary  List contacts
// @Tags     contacts
// @Produce  json
// @Success  200  {array}  domain.Contact
// @Router   /contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	contacts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contacts)
}

// @Summary  Get a contact
// @Tags     contacts
// @Produce  json
// @Param    id   path      string  true  "Contact id"
// @Success  200  {object}  domain.Contact
// @Failure  404  {object}  errorResponse
// @Router   /contacts/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	contact, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contact)
}

// Create handles POST /contacts. Behind the Auth middleware the creator is the
// token subject and any created_by in the body is ignored.
//
// @Summary  Create a contact
// @Tags     contacts
// @Accept   json
// @Produce  json
// @Param    body  body      createContactRequest  true  "Contact"
// @Success  201   {object}  domain.Contact
// @Failure  422   {object}  errorResponse
// @Router   /contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var req createContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	createdBy := ctxUserID(c)
	if createdBy == "" {
		createdBy = req.CreatedBy
	}

	contact, err := h.service.Create(c.Request().Context(), domain.Contact{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Type:      domain.ContactType(req.Type),
		CreatedBy: createdBy,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, contact)
}

// @Summary  Update a contact
// @Tags     contacts
// @Accept   json
// @Produce  json
// @Param    id    path      string                true  "Contact id"
// @Param    body  body      updateContactRequest  true  "Fields to change"
// @Success  200   {object}  domain.Contact
// @Failure  404   {object}  errorResponse
// @Router   /contacts/{id} [put]
func (h *ContactHandler) Update(c echo.Context) error {
	var req updateContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	contact, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contact)
}

// @Summary  Delete a contact
// @Tags     contacts
// @Param    id   path  string  true  "Contact id"
// @Success  204
// @Failure  404  {object}  errorResponse
// @Router   /contacts/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
