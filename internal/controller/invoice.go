package controller

import (
	"net/http"
	"time"

	"freelance-market-api/internal/common"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type invoiceRoutesHandler struct {
	invoiceService service.Invoice
	validate       *validator.Validate
}

func newInvoiceRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *invoiceRoutesHandler {
	h := &invoiceRoutesHandler{invoiceService: services.Invoice, validate: v}

	outer.POST("/invoices/new", h.PostInvoice)
	outer.GET("/invoices/:invoiceId", h.GetInvoice)
	outer.GET("/invoices/customer/:customerId", h.GetCustomerInvoices)
	outer.GET("/invoices/freelancer/:freelancerId", h.GetFreelancerInvoices)
	outer.PUT("/invoices/:invoiceId/status", h.UpdateInvoiceStatus)
	outer.PATCH("/invoices/:invoiceId/edit", h.EditInvoice)
	outer.DELETE("/invoices/:invoiceId", h.DeleteInvoice)

	return h
}

type postInvoiceInput struct {
	ContractId  string `json:"contractId" validate:"required,uuid"`
	MilestoneId string `json:"milestoneId" validate:"omitempty,uuid"`
}

// /invoices/new
func (h *invoiceRoutesHandler) PostInvoice(c echo.Context) error {
	var input postInvoiceInput
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

	invoice, err := h.invoiceService.CreateInvoice(c.Request().Context(), input.ContractId, input.MilestoneId)
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusCreated, invoice)
}

// /invoices/:invoiceId
func (h *invoiceRoutesHandler) GetInvoice(c echo.Context) error {
	invoice, err := h.invoiceService.GetInvoiceById(c.Request().Context(), c.Param("invoiceId"))
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, invoice)
}

type listInvoicesInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=50"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /invoices/customer/:customerId
func (h *invoiceRoutesHandler) GetCustomerInvoices(c echo.Context) error {
	input := listInvoicesInput{Limit: defaultLimit, Offset: defaultOffset}
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

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	invoices, err := h.invoiceService.GetInvoicesByCustomerId(c.Request().Context(), c.Param("customerId"), pg)
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, invoices)
}

// /invoices/freelancer/:freelancerId
func (h *invoiceRoutesHandler) GetFreelancerInvoices(c echo.Context) error {
	input := listInvoicesInput{Limit: defaultLimit, Offset: defaultOffset}
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

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	invoices, err := h.invoiceService.GetInvoicesByFreelancerId(c.Request().Context(), c.Param("freelancerId"), pg)
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, invoices)
}

type updateInvoiceStatusInput struct {
	InvoiceId string `param:"invoiceId" validate:"required,uuid"`
	Status    string `query:"status" validate:"required,oneof=PENDING PAID CANCELLED"`
}

// /invoices/:invoiceId/status
func (h *invoiceRoutesHandler) UpdateInvoiceStatus(c echo.Context) error {
	input := updateInvoiceStatusInput{
		InvoiceId: c.Param("invoiceId"),
		Status:    c.QueryParam("status"),
	}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	invoice, err := h.invoiceService.UpdateInvoiceStatusById(c.Request().Context(), input.InvoiceId, common.InvoiceStatus(input.Status))
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, invoice)
}

type editInvoiceInput struct {
	DueDate *time.Time `json:"dueDate"`
}

// /invoices/:invoiceId/edit
func (h *invoiceRoutesHandler) EditInvoice(c echo.Context) error {
	var input editInvoiceInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	invoice, err := h.invoiceService.UpdateInvoiceById(c.Request().Context(), c.Param("invoiceId"), &entity.InvoicePatch{
		DueDate: input.DueDate,
	})
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, invoice)
}

// /invoices/:invoiceId
func (h *invoiceRoutesHandler) DeleteInvoice(c echo.Context) error {
	if err := h.invoiceService.DeleteInvoiceById(c.Request().Context(), c.Param("invoiceId")); err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.NoContent(http.StatusNoContent)
}
