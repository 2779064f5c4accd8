package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"certificate-system/internal/controllers"
	"certificate-system/internal/services"
)

func runClientRouter(secureGroup *echo.Group, clientHistory services.ClientHistoryServiceInterface, logger *zap.Logger) {
	clientCtrl := controllers.NewClientController(clientHistory, logger)
	secureGroup.GET("/clients/recent", clientCtrl.RecentClients)
}
