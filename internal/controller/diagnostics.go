package controller

import (
	"net/http"

	"freelance-market-api/internal/service"

	"github.com/labstack/echo"
)

type diagnosticRoutesHandler struct {
	diagnosticService service.Diagnostics
}

func newDiagnosticRoutesHandler(outer *echo.Group, services *service.Services) *diagnosticRoutesHandler {
	h := &diagnosticRoutesHandler{services.Diagnostics}
	outer.GET("/ping", h.Ping)

	return h
}

func (h *diagnosticRoutesHandler) Ping(c echo.Context) error {
	if err := h.diagnosticService.Ping(); err != nil {
		if e := c.NoContent(http.StatusInternalServerError); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, "ok")
}
