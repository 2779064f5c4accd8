package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"certificate-system/internal/controllers"
	"certificate-system/internal/services"
)

func runOCRRouter(secureGroup *echo.Group, ocrService services.OCRServiceInterface, logger *zap.Logger) {
	ocrCtrl := controllers.NewOCRController(ocrService, logger)
	secureGroup.POST("/ocr", ocrCtrl.Recognize)
}
