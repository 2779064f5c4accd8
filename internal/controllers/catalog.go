package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"certificate-system/internal/catalog"
	"certificate-system/internal/services"
	"certificate-system/pkg/utils"
)

type CatalogController struct {
	catalogService services.CatalogServiceInterface
	logger         *zap.Logger
}

func NewCatalogController(catalogService services.CatalogServiceInterface, logger *zap.Logger) *CatalogController {
	return &CatalogController{catalogService: catalogService, logger: logger}
}

func (ctrl *CatalogController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

// Search returns the grouped view for an empty query and a flat list otherwise.
func (ctrl *CatalogController) Search(c echo.Context) error {
	kind := catalog.Kind(c.Param("kind"))
	res, err := ctrl.catalogService.Search(c.Request().Context(), kind, c.QueryParam("search"))
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Successfully", http.StatusOK)
}

func (ctrl *CatalogController) Find(c echo.Context) error {
	kind := catalog.Kind(c.Param("kind"))
	res, err := ctrl.catalogService.Find(c.Request().Context(), kind, c.Param("id"))
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Successfully", http.StatusOK)
}

func (ctrl *CatalogController) Export(c echo.Context) error {
	kind := catalog.Kind(c.Param("kind"))
	out, err := ctrl.catalogService.ExportXLSX(c.Request().Context(), kind)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	fileName := fmt.Sprintf("%s_%s.xlsx", strings.ReplaceAll(string(kind), "-", "_"), time.Now().Format("2006-01-02"))
	return attachment(c, xlsxContentType, fileName, out)
}

func (ctrl *CatalogController) DNOs(c echo.Context) error {
	return utils.SuccessResponse(c, ctrl.catalogService.DNOs(c.Request().Context()), "Successfully", http.StatusOK)
}
