package controller

import (
	"net/http"
	"time"

	"freelance-market-api/internal/common"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
)

type milestoneRoutesHandler struct {
	milestoneService service.Milestone
	validate         *validator.Validate
}

func newMilestoneRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *milestoneRoutesHandler {
	h := &milestoneRoutesHandler{milestoneService: services.Milestone, validate: v}

	outer.POST("/milestones/new", h.PostMilestone)
	outer.GET("/milestones/contract/:contractId", h.GetContractMilestones)
	outer.PUT("/milestones/:milestoneId/status", h.UpdateMilestoneStatus)
	outer.PATCH("/milestones/:milestoneId/edit", h.EditMilestone)
	outer.DELETE("/milestones/:milestoneId", h.DeleteMilestone)

	return h
}

type postMilestoneInput struct {
	ContractId       string          `json:"contractId" validate:"required,uuid"`
	Title            string          `json:"title" validate:"required,max=200"`
	Amount           decimal.Decimal `json:"amount" validate:"required"`
	PenaltyAmount    decimal.Decimal `json:"penaltyAmount"`
	BonusAmount      decimal.Decimal `json:"bonusAmount"`
	PlannedStartDate time.Time       `json:"plannedStartDate" validate:"required"`
	PlannedEndDate   time.Time       `json:"plannedEndDate" validate:"required"`
}

// /milestones/new
func (h *milestoneRoutesHandler) PostMilestone(c echo.Context) error {
	var input postMilestoneInput
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

	milestone, err := h.milestoneService.CreateMilestone(c.Request().Context(), &entity.CreateMilestoneInput{
		ContractId:       input.ContractId,
		Title:            input.Title,
		Amount:           input.Amount,
		PenaltyAmount:    input.PenaltyAmount,
		BonusAmount:      input.BonusAmount,
		PlannedStartDate: input.PlannedStartDate,
		PlannedEndDate:   input.PlannedEndDate,
	})
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusCreated, milestone)
}

// /milestones/contract/:contractId
func (h *milestoneRoutesHandler) GetContractMilestones(c echo.Context) error {
	milestones, err := h.milestoneService.GetMilestonesByContractId(c.Request().Context(), c.Param("contractId"))
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, milestones)
}

type updateMilestoneStatusInput struct {
	MilestoneId string `param:"milestoneId" validate:"required,uuid"`
	Status      string `query:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED PAID CANCELLED"`
}

// /milestones/:milestoneId/status
func (h *milestoneRoutesHandler) UpdateMilestoneStatus(c echo.Context) error {
	input := updateMilestoneStatusInput{
		MilestoneId: c.Param("milestoneId"),
		Status:      c.QueryParam("status"),
	}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	milestone, err := h.milestoneService.UpdateMilestoneStatusById(c.Request().Context(), input.MilestoneId, common.MilestoneStatus(input.Status))
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, milestone)
}

type editMilestoneInput struct {
	Title            *string          `json:"title" validate:"omitempty,max=200"`
	Amount           *decimal.Decimal `json:"amount"`
	PenaltyAmount    *decimal.Decimal `json:"penaltyAmount"`
	BonusAmount      *decimal.Decimal `json:"bonusAmount"`
	PlannedStartDate *time.Time       `json:"plannedStartDate"`
	PlannedEndDate   *time.Time       `json:"plannedEndDate"`
}

// /milestones/:milestoneId/edit
func (h *milestoneRoutesHandler) EditMilestone(c echo.Context) error {
	var input editMilestoneInput
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

	milestone, err := h.milestoneService.UpdateMilestoneById(c.Request().Context(), c.Param("milestoneId"), &entity.MilestonePatch{
		Title:            input.Title,
		Amount:           input.Amount,
		PenaltyAmount:    input.PenaltyAmount,
		BonusAmount:      input.BonusAmount,
		PlannedStartDate: input.PlannedStartDate,
		PlannedEndDate:   input.PlannedEndDate,
	})
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, milestone)
}

// /milestones/:milestoneId
func (h *milestoneRoutesHandler) DeleteMilestone(c echo.Context) error {
	if err := h.milestoneService.DeleteMilestoneById(c.Request().Context(), c.Param("milestoneId")); err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.NoContent(http.StatusNoContent)
}
