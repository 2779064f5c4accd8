package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"certificate-system/internal/controllers"
	"certificate-system/internal/services"
)

func runCalculatorRouter(secureGroup *echo.Group, calculatorService services.CalculatorServiceInterface, logger *zap.Logger) {
	calcCtrl := controllers.NewCalculatorController(calculatorService, logger)

	calculators := secureGroup.Group("/calculators")
	calculators.POST("/power-factor", calcCtrl.PowerFactor)
	calculators.POST("/sound-level", calcCtrl.SoundLevel)
	calculators.POST("/pv-yield", calcCtrl.PVYield)
}
