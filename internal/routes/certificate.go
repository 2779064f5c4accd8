package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"certificate-system/internal/controllers"
	"certificate-system/internal/services"
)

func runCertificateRouter(secureGroup *echo.Group, certificateService services.CertificateServiceInterface, logger *zap.Logger) {
	certCtrl := controllers.NewCertificateController(certificateService, logger)

	secureGroup.GET("/certificates", certCtrl.GetCertificates)

	certificate := secureGroup.Group("/certificate")
	certificate.POST("", certCtrl.CreateCertificate)
	certificate.GET("/:id", certCtrl.FindCertificate)
	certificate.PUT("/:id", certCtrl.UpdateCertificate)
	certificate.DELETE("/:id", certCtrl.DeleteCertificate)
	certificate.PATCH("/:id/form", certCtrl.PatchForm)
	certificate.POST("/:id/selection", certCtrl.SelectEquipment)
	certificate.GET("/:id/pdf", certCtrl.DownloadPDF)
}
