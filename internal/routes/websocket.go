package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"certificate-system/internal/controllers"
	"certificate-system/pkg/service"
	"certificate-system/pkg/websocket"
)

func runWebSocketRouter(api *echo.Group, hub *websocket.Hub, jwtSvc service.JWTService, allowedOrigins []string, logger *zap.Logger) {
	wsCtrl := controllers.NewWebSocketController(hub, jwtSvc, allowedOrigins, logger)
	api.GET("/ws", wsCtrl.ServeWs)
}
