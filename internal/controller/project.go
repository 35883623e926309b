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

type projectRoutesHandler struct {
	projectService service.Project
	validate       *validator.Validate
}

func newProjectRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *projectRoutesHandler {
	h := &projectRoutesHandler{projectService: services.Project, validate: v}

	outer.POST("/projects/new", h.PostProject)
	outer.GET("/projects", h.GetProjects)
	outer.GET("/projects/:projectId", h.GetProject)
	outer.PUT("/projects/:projectId/status", h.UpdateProjectStatus)
	outer.DELETE("/projects/:projectId", h.DeleteProject)

	return h
}

type postProjectInput struct {
	CustomerId  string          `json:"customerId" validate:"required,uuid"`
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	Budget      decimal.Decimal `json:"budget" validate:"required"`
	PaymentType string          `json:"paymentType" validate:"required,oneof=UPON_COMPLETION MILESTONE"`
	Deadline    *time.Time      `json:"deadline"`
}

// /projects/new
func (h *projectRoutesHandler) PostProject(c echo.Context) error {
	var input postProjectInput
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

	project, err := h.projectService.CreateProject(c.Request().Context(), &entity.CreateProjectInput{
		CustomerId:  input.CustomerId,
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
		PaymentType: common.PaymentType(input.PaymentType),
		Deadline:    input.Deadline,
	})
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusCreated, project)
}

type getProjectsInput struct {
	Limit      int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset     int32  `query:"offset" validate:"gte=0"`
	CustomerId string `query:"customerId" validate:"omitempty,uuid"`
	Status     string `query:"status" validate:"omitempty,oneof=OPEN PROPOSALS_RECEIVED IN_PROGRESS ON_HOLD COMPLETED CANCELLED TERMINATED"`
	Search     string `query:"search" validate:"max=200"`
}

// /projects
func (h *projectRoutesHandler) GetProjects(c echo.Context) error {
	input := getProjectsInput{Limit: defaultLimit, Offset: defaultOffset}
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
	filter := &entity.ProjectFilter{
		CustomerId: input.CustomerId,
		Status:     input.Status,
		SearchTerm: input.Search,
	}

	projects, err := h.projectService.GetProjects(c.Request().Context(), filter, pg)
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, projects)
}

// /projects/:projectId
func (h *projectRoutesHandler) GetProject(c echo.Context) error {
	project, err := h.projectService.GetProjectById(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, project)
}

type updateProjectStatusInput struct {
	ProjectId string `param:"projectId" validate:"required,uuid"`
	Status    string `query:"status" validate:"required,oneof=OPEN PROPOSALS_RECEIVED IN_PROGRESS ON_HOLD COMPLETED CANCELLED TERMINATED"`
}

// /projects/:projectId/status
func (h *projectRoutesHandler) UpdateProjectStatus(c echo.Context) error {
	input := updateProjectStatusInput{
		ProjectId: c.Param("projectId"),
		Status:    c.QueryParam("status"),
	}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	project, err := h.projectService.UpdateProjectStatusById(c.Request().Context(), input.ProjectId, common.ProjectStatus(input.Status))
	if err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, project)
}

// /projects/:projectId
func (h *projectRoutesHandler) DeleteProject(c echo.Context) error {
	if err := h.projectService.DeleteProjectById(c.Request().Context(), c.Param("projectId")); err != nil {
		if e := respondServiceError(c, err); e != nil {
			return e
		}

		return err
	}

	return c.NoContent(http.StatusNoContent)
}
