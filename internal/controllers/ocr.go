package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"certificate-system/internal/dto"
	"certificate-system/internal/services"
	"certificate-system/pkg/utils"
)

type OCRController struct {
	ocrService services.OCRServiceInterface
	logger     *zap.Logger
}

func NewOCRController(ocrService services.OCRServiceInterface, logger *zap.Logger) *OCRController {
	return &OCRController{ocrService: ocrService, logger: logger}
}

func (ctrl *OCRController) Recognize(c echo.Context) error {
	var payload dto.OCRRequestDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	res, err := ctrl.ocrService.Recognize(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Successfully", http.StatusOK)
}
