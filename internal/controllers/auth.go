package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"certificate-system/internal/dto"
	"certificate-system/internal/services"
	"certificate-system/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) IssueToken(c echo.Context) error {
	var payload dto.TokenRequestDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.authService.IssueToken(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	ctrl.logger.Info("access token issued", zap.String("installer_id", payload.InstallerID))
	return utils.SuccessResponse(c, res, "Token issued", http.StatusOK)
}
