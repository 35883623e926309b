package controller

import (
	"freelance-market-api/internal/identity"
	"freelance-market-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services, tokens *identity.Manager) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	api := handler.Group("/api")
	newDiagnosticRoutesHandler(api, services)

	protected := api.Group("", authMiddleware(tokens))
	newProjectRoutesHandler(protected, services, validate)
	newProposalRoutesHandler(protected, services, validate)
	newContractRoutesHandler(protected, services, validate)
	newMilestoneRoutesHandler(protected, services, validate)
	newInvoiceRoutesHandler(protected, services, validate)
	newPaymentRoutesHandler(protected, services, validate)
}
