package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"certificate-system/internal/dto"
	"certificate-system/internal/services"
	"certificate-system/pkg/utils"
)

type CertificateController struct {
	certificateService services.CertificateServiceInterface
	logger             *zap.Logger
}

func NewCertificateController(certificateService services.CertificateServiceInterface, logger *zap.Logger) *CertificateController {
	return &CertificateController{certificateService: certificateService, logger: logger}
}

func (ctrl *CertificateController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *CertificateController) GetCertificates(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())

	list, total, err := ctrl.certificateService.List(c.Request().Context(), filter)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	if list == nil {
		list = make([]dto.CertificateDTO, 0)
	}
	return utils.SuccessResponse(c, list, "Successfully", http.StatusOK, total)
}

func (ctrl *CertificateController) FindCertificate(c echo.Context) error {
	id, err := parseCertificateID(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	res, err := ctrl.certificateService.Get(c.Request().Context(), id)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Successfully", http.StatusOK)
}

func (ctrl *CertificateController) CreateCertificate(c echo.Context) error {
	var payload dto.CreateCertificateDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}
	res, err := ctrl.certificateService.Create(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Successfully created", http.StatusCreated)
}

func (ctrl *CertificateController) UpdateCertificate(c echo.Context) error {
	id, err := parseCertificateID(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	var payload dto.UpdateCertificateDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}
	res, err := ctrl.certificateService.Update(c.Request().Context(), id, payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Successfully updated", http.StatusOK)
}

func (ctrl *CertificateController) PatchForm(c echo.Context) error {
	id, err := parseCertificateID(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	var payload dto.PatchFormDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}
	res, err := ctrl.certificateService.PatchForm(c.Request().Context(), id, payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Successfully updated", http.StatusOK)
}

func (ctrl *CertificateController) SelectEquipment(c echo.Context) error {
	id, err := parseCertificateID(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	var payload dto.SelectEquipmentDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}
	res, err := ctrl.certificateService.SelectEquipment(c.Request().Context(), id, payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Successfully", http.StatusOK)
}

func (ctrl *CertificateController) DeleteCertificate(c echo.Context) error {
	id, err := parseCertificateID(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	if err := ctrl.certificateService.Delete(c.Request().Context(), id); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "Successfully deleted", http.StatusOK)
}

func (ctrl *CertificateController) DownloadPDF(c echo.Context) error {
	id, err := parseCertificateID(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	out, fileName, err := ctrl.certificateService.RenderPDF(c.Request().Context(), id)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return attachment(c, "application/pdf", fileName, out)
}
