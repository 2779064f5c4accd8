package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"certificate-system/internal/certificates"
	"certificate-system/internal/entities"
	"certificate-system/internal/services"
	apperrors "certificate-system/pkg/errors"
	"certificate-system/pkg/utils"
)

type ClientController struct {
	clientHistory services.ClientHistoryServiceInterface
	logger        *zap.Logger
}

func NewClientController(clientHistory services.ClientHistoryServiceInterface, logger *zap.Logger) *ClientController {
	return &ClientController{clientHistory: clientHistory, logger: logger}
}

func (ctrl *ClientController) RecentClients(c echo.Context) error {
	kind := certificates.Kind(c.QueryParam("kind"))
	if _, err := certificates.NewForm(kind); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Unknown certificate kind", err, nil), ctrl.logger)
	}

	clients, err := ctrl.clientHistory.Recent(c.Request().Context(), kind)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if clients == nil {
		clients = make([]entities.Client, 0)
	}
	return utils.SuccessResponse(c, clients, "Successfully", http.StatusOK)
}
