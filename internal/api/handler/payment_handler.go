package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shivaccounts/accounts-api/internal/core/ports"
)

type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreateOrder opens a gateway order for the cart total.
//
// @Summary  Create a payment order
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    body  body      createOrderRequest  true  "Cart total in major currency units"
// @Success  200   {object}  createOrderResponse
// @Failure  422   {object}  errorResponse
// @Failure  502   {object}  errorResponse
// @Failure  503   {object}  errorResponse
// @Router   /create-order [post]
func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	order, err := h.service.CreateOrder(c.Request().Context(), req.CartTotal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, createOrderResponse{
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
	})
}
