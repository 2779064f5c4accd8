package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"certificate-system/internal/controllers"
	"certificate-system/internal/services"
)

func runCatalogRouter(secureGroup *echo.Group, catalogService services.CatalogServiceInterface, logger *zap.Logger) {
	catalogCtrl := controllers.NewCatalogController(catalogService, logger)

	catalogs := secureGroup.Group("/catalog")
	catalogs.GET("/:kind", catalogCtrl.Search)
	// registered before /:kind/:id so "export" is not read as a record id
	catalogs.GET("/:kind/export", catalogCtrl.Export)
	catalogs.GET("/:kind/:id", catalogCtrl.Find)

	secureGroup.GET("/reference/dno", catalogCtrl.DNOs)
}
