package controller

import (
	"net/http"

	"freelance-market-api/internal/common"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo"
)

type contractRoutesHandler struct {
	contractService service.Contract
	validate        *validator.Validate
}

func newContractRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *contractRoutesHandler {
	h := &contractRoutesHandler{contractService: services.Contract, validate: v}

	outer.GET("/contracts", h.GetContracts)
	outer.GET("/contracts/:contractId", h.GetContract)
	outer.GET("/contracts/project/:projectId", h.GetProjectContract)
	outer.PUT("/contracts/:contractId/status", h.UpdateContractStatus)
	outer.PATCH("/contracts/:contractId/edit", h.EditContract)
	outer.DELETE("/contracts/:contractId", h.DeleteContract)

	return h
}

type getContractsInput struct {
	Limit          int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset         int32  `query:"offset" validate:"gte=0"`
	CustomerName   string `query:"customerName" validate:"max=200"`
	FreelancerName string `query:"freelancerName" validate:"max=200"`
	Status         string `query:"status" validate:"omitempty,oneof=ACTIVE ON_HOLD COMPLETED CANCELLED TERMINATED"`
	Search         string `query:"search" validate:"max=200"`
}

// /contracts
func (h *contractRoutesHandler) GetContracts(c echo.Context) error {
	input := getContractsInput{Limit: defaultLimit, Offset: defaultOffset}
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
	filter := &entity.ContractFilter{
		CustomerName:   input.CustomerName,
		FreelancerName: input.FreelancerName,
		Status:         input.Status,
		SearchTerm:     input.Search,
	}

	contracts, err := h.contractService.GetContracts(c.Request().Context(), filter, pg)
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, contracts)
}

// /contracts/:contractId
func (h *contractRoutesHandler) GetContract(c echo.Context) error {
	contract, err := h.contractService.GetContractById(c.Request().Context(), c.Param("contractId"))
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, contract)
}

// /contracts/project/:projectId
func (h *contractRoutesHandler) GetProjectContract(c echo.Context) error {
	contract, err := h.contractService.GetContractByProjectId(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, contract)
}

type updateContractStatusInput struct {
	ContractId string `param:"contractId" validate:"required,uuid"`
	Status     string `query:"status" validate:"required,oneof=ACTIVE ON_HOLD COMPLETED CANCELLED TERMINATED"`
}

// /contracts/:contractId/status
func (h *contractRoutesHandler) UpdateContractStatus(c echo.Context) error {
	input := updateContractStatusInput{
		ContractId: c.Param("contractId"),
		Status:     c.QueryParam("status"),
	}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	contract, err := h.contractService.UpdateContractStatusById(c.Request().Context(), input.ContractId, common.ContractStatus(input.Status))
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, contract)
}

type editContractInput struct {
	InvoiceId *string `json:"invoiceId" validate:"omitempty,uuid"`
}

// /contracts/:contractId/edit
func (h *contractRoutesHandler) EditContract(c echo.Context) error {
	var input editContractInput
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

	patch := &entity.ContractPatch{}
	if input.InvoiceId != nil {
		id, err := uuid.Parse(*input.InvoiceId)
		if err != nil {
			if e := c.JSON(http.StatusBadRequest, errorResponse{"invoiceId should be a valid uuid"}); e != nil {
				return e
			}

			return err
		}
		patch.InvoiceId = &id
	}

	contract, err := h.contractService.UpdateContractById(c.Request().Context(), c.Param("contractId"), patch)
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, contract)
}

// /contracts/:contractId
func (h *contractRoutesHandler) DeleteContract(c echo.Context) error {
	if err := h.contractService.DeleteContractById(c.Request().Context(), c.Param("contractId")); err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.NoContent(http.StatusNoContent)
}
