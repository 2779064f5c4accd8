package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"certificate-system/internal/controllers"
	"certificate-system/internal/services"
)

func runAuthRouter(api *echo.Group, authService services.AuthServiceInterface, logger *zap.Logger) {
	authCtrl := controllers.NewAuthController(authService, logger)

	auth := api.Group("/auth")
	auth.POST("/token", authCtrl.IssueToken)
}
