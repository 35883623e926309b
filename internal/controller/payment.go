package controller

import (
	"net/http"

	"freelance-market-api/internal/common"
	"freelance-market-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type paymentRoutesHandler struct {
	paymentService service.Payment
	validate       *validator.Validate
}

func newPaymentRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *paymentRoutesHandler {
	h := &paymentRoutesHandler{paymentService: services.Payment, validate: v}

	outer.POST("/payments/new", h.PostPayment)
	outer.GET("/payments/invoice/:invoiceId", h.GetInvoicePayment)
	outer.PUT("/payments/:paymentId/status", h.UpdatePaymentStatus)
	outer.DELETE("/payments/:paymentId", h.DeletePayment)

	return h
}

type postPaymentInput struct {
	InvoiceId string `json:"invoiceId" validate:"required,uuid"`
	Notes     string `json:"notes" validate:"max=500"`
}

// /payments/new
func (h *paymentRoutesHandler) PostPayment(c echo.Context) error {
	var input postPaymentInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	payment, err := h.paymentService.CreatePayment(c.Request().Context(), input.InvoiceId, input.Notes)
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusCreated, payment)
}

// /payments/invoice/:invoiceId
func (h *paymentRoutesHandler) GetInvoicePayment(c echo.Context) error {
	payment, err := h.paymentService.GetPaymentByInvoiceId(c.Request().Context(), c.Param("invoiceId"))
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, payment)
}

type updatePaymentStatusInput struct {
	PaymentId string `param:"paymentId" validate:"required,uuid"`
	Status    string `query:"status" validate:"required,oneof=PENDING PAID"`
}

// /payments/:paymentId/status
func (h *paymentRoutesHandler) UpdatePaymentStatus(c echo.Context) error {
	input := updatePaymentStatusInput{
		PaymentId: c.Param("paymentId"),
		Status:    c.QueryParam("status"),
	}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	payment, err := h.paymentService.UpdatePaymentStatusById(c.Request().Context(), input.PaymentId, common.PaymentRecordStatus(input.Status))
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, payment)
}

// /payments/:paymentId
func (h *paymentRoutesHandler) DeletePayment(c echo.Context) error {
	if err := h.paymentService.DeletePaymentById(c.Request().Context(), c.Param("paymentId")); err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.NoContent(http.StatusNoContent)
}
