package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"freelance-market-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

const (
	defaultLimit  = 20
	defaultOffset = 0
)

type errorResponse struct {
	Reason string `json:"reason"`
}

// respondServiceError maps the service error taxonomy onto HTTP codes.
// Every business error wraps one of the four base errors, so one errors.Is
// chain covers the whole API.
func respondServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{err.Error()})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, errorResponse{err.Error()})
	case errors.Is(err, service.ErrInvalidState):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{err.Error()})
	case errors.Is(err, service.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, errorResponse{err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"internal error"})
	}
}

func getAllErrorMessages(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return "incorrect value passed"
	}

	var builder strings.Builder
	for _, fe := range ve {
		builder.WriteString(fmt.Sprintf("'%s': %s\n", fe.Field(), getMessage(fe)))
	}

	return builder.String()
}

func getMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	case "uuid":
		return "should be a valid uuid"
	}

	return "incorrect value passed"
}
