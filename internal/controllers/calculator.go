package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"certificate-system/internal/dto"
	"certificate-system/internal/services"
	"certificate-system/pkg/utils"
)

type CalculatorController struct {
	calculatorService services.CalculatorServiceInterface
	logger            *zap.Logger
}

func NewCalculatorController(calculatorService services.CalculatorServiceInterface, logger *zap.Logger) *CalculatorController {
	return &CalculatorController{calculatorService: calculatorService, logger: logger}
}

func (ctrl *CalculatorController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *CalculatorController) PowerFactor(c echo.Context) error {
	var payload dto.PowerFactorRequestDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}
	res, err := ctrl.calculatorService.PowerFactor(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Successfully", http.StatusOK)
}

func (ctrl *CalculatorController) SoundLevel(c echo.Context) error {
	var payload dto.SoundLevelRequestDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}
	res, err := ctrl.calculatorService.SoundLevel(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Successfully", http.StatusOK)
}

func (ctrl *CalculatorController) PVYield(c echo.Context) error {
	var payload dto.PVYieldRequestDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}
	res, err := ctrl.calculatorService.PVYield(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Successfully", http.StatusOK)
}
