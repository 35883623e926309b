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

type proposalRoutesHandler struct {
	proposalService service.Proposal
	validate        *validator.Validate
}

func newProposalRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *proposalRoutesHandler {
	h := &proposalRoutesHandler{proposalService: services.Proposal, validate: v}

	outer.POST("/proposals/new", h.PostProposal)
	outer.GET("/proposals/:proposalId", h.GetProposal)
	outer.GET("/proposals/project/:projectId", h.GetProjectProposals)
	outer.GET("/proposals/my", h.GetFreelancerProposals)
	outer.PUT("/proposals/:proposalId/status", h.UpdateProposalStatus)
	outer.PATCH("/proposals/:proposalId/edit", h.EditProposal)
	outer.DELETE("/proposals/:proposalId", h.DeleteProposal)

	return h
}

type proposalMilestoneInput struct {
	Title            string          `json:"title" validate:"required,max=200"`
	Amount           decimal.Decimal `json:"amount" validate:"required"`
	PlannedStartDate time.Time       `json:"plannedStartDate" validate:"required"`
	PlannedEndDate   time.Time       `json:"plannedEndDate" validate:"required"`
}

type postProposalInput struct {
	ProjectId             string                   `json:"projectId" validate:"required,uuid"`
	FreelancerId          string                   `json:"freelancerId" validate:"required,uuid"`
	Amount                decimal.Decimal          `json:"amount" validate:"required"`
	CoverLetter           string                   `json:"coverLetter" validate:"max=2000"`
	PlannedStartDate      time.Time                `json:"plannedStartDate" validate:"required"`
	PlannedEndDate        time.Time                `json:"plannedEndDate" validate:"required"`
	EstimatedDurationDays int                      `json:"estimatedDurationDays" validate:"gte=0"`
	Milestones            []proposalMilestoneInput `json:"milestones" validate:"dive"`
}

// /proposals/new
func (h *proposalRoutesHandler) PostProposal(c echo.Context) error {
	var input postProposalInput
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

	model := &entity.CreateProposalInput{
		ProjectId:             input.ProjectId,
		FreelancerId:          input.FreelancerId,
		Amount:                input.Amount,
		CoverLetter:           input.CoverLetter,
		PlannedStartDate:      input.PlannedStartDate,
		PlannedEndDate:        input.PlannedEndDate,
		EstimatedDurationDays: input.EstimatedDurationDays,
	}
	for _, m := range input.Milestones {
		model.Milestones = append(model.Milestones, entity.ProposalMilestoneInput{
			Title:            m.Title,
			Amount:           m.Amount,
			PlannedStartDate: m.PlannedStartDate,
			PlannedEndDate:   m.PlannedEndDate,
		})
	}

	proposal, err := h.proposalService.SubmitProposal(c.Request().Context(), model)
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusCreated, proposal)
}

// /proposals/:proposalId
func (h *proposalRoutesHandler) GetProposal(c echo.Context) error {
	proposal, err := h.proposalService.GetProposalById(c.Request().Context(), c.Param("proposalId"))
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, proposal)
}

type listProposalsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=50"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /proposals/project/:projectId
func (h *proposalRoutesHandler) GetProjectProposals(c echo.Context) error {
	input := listProposalsInput{Limit: defaultLimit, Offset: defaultOffset}
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
	proposals, err := h.proposalService.GetProposalsByProjectId(c.Request().Context(), c.Param("projectId"), pg)
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, proposals)
}

type freelancerProposalsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=50"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /proposals/my lists the proposals of the authenticated freelancer.
func (h *proposalRoutesHandler) GetFreelancerProposals(c echo.Context) error {
	claims := callerClaims(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, errorResponse{"missing bearer token"})
	}

	input := freelancerProposalsInput{Limit: defaultLimit, Offset: defaultOffset}
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
	proposals, err := h.proposalService.GetProposalsByFreelancerId(c.Request().Context(), claims.UserId, pg)
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, proposals)
}

type updateProposalStatusInput struct {
	ProposalId string `param:"proposalId" validate:"required,uuid"`
	Status     string `query:"status" validate:"required,oneof=PENDING ACCEPTED REJECTED WITHDRAWN"`
}

// /proposals/:proposalId/status
func (h *proposalRoutesHandler) UpdateProposalStatus(c echo.Context) error {
	input := updateProposalStatusInput{
		ProposalId: c.Param("proposalId"),
		Status:     c.QueryParam("status"),
	}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	proposal, err := h.proposalService.UpdateProposalStatusById(c.Request().Context(), input.ProposalId, common.ProposalStatus(input.Status))
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, proposal)
}

type editProposalInput struct {
	Amount           *decimal.Decimal `json:"amount"`
	CoverLetter      *string          `json:"coverLetter" validate:"omitempty,max=2000"`
	PlannedStartDate *time.Time       `json:"plannedStartDate"`
	PlannedEndDate   *time.Time       `json:"plannedEndDate"`
}

// /proposals/:proposalId/edit
func (h *proposalRoutesHandler) EditProposal(c echo.Context) error {
	var input editProposalInput
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

	proposal, err := h.proposalService.UpdateProposalById(c.Request().Context(), c.Param("proposalId"), &entity.ProposalPatch{
		Amount:           input.Amount,
		CoverLetter:      input.CoverLetter,
		PlannedStartDate: input.PlannedStartDate,
		PlannedEndDate:   input.PlannedEndDate,
	})
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, proposal)
}

// /proposals/:proposalId
func (h *proposalRoutesHandler) DeleteProposal(c echo.Context) error {
	if err := h.proposalService.DeleteProposalById(c.Request().Context(), c.Param("proposalId")); err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.NoContent(http.StatusNoContent)
}
