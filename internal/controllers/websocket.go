package controllers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"certificate-system/pkg/service"
	appwebsocket "certificate-system/pkg/websocket"
)

type WebSocketController struct {
	hub        *appwebsocket.Hub
	jwtService service.JWTService
	upgrader   websocket.Upgrader
	logger     *zap.Logger
}

func NewWebSocketController(hub *appwebsocket.Hub, jwtService service.JWTService, allowedOrigins []string, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{
		hub:        hub,
		jwtService: jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, o := range allowedOrigins {
					if o == origin {
						return true
					}
				}
				return false
			},
		},
		logger: logger,
	}
}

// ServeWs takes the access token from the query string since browsers cannot set
// headers on a websocket handshake.
func (ctrl *WebSocketController) ServeWs(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return c.String(http.StatusUnauthorized, "Missing token")
	}
	claims, err := ctrl.jwtService.ValidateToken(token)
	if err != nil {
		return c.String(http.StatusUnauthorized, "Invalid token")
	}

	conn, err := ctrl.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		ctrl.logger.Error("websocket upgrade failed", zap.Error(err))
		return err
	}

	client := appwebsocket.NewClient(ctrl.hub, conn, claims.InstallerID)
	ctrl.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()

	ctrl.logger.Info("websocket client connected", zap.String("installer_id", claims.InstallerID))
	return nil
}
