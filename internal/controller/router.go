package controller

import (
	"gig-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services, jwtSecret string) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	api := handler.Group("/api")
	secured := api.Group("", AuthRequired(jwtSecret))

	newDiagnosticRoutesHandler(api, services)
	newGigRoutesHandler(api, secured, services, validate)
	newBidRoutesHandler(secured, services, validate)
}
