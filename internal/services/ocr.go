package services

import (
	"context"

	"go.uber.org/zap"

	"certificate-system/internal/dto"
	"certificate-system/internal/integrations"
	apperrors "certificate-system/pkg/errors"
	"certificate-system/pkg/utils"
)

const (
	ocrUploadContext  = "ocr_image"
	maxOCRSuggestions = 10
)

type OCRServiceInterface interface {
	Recognize(ctx context.Context, req dto.OCRRequestDTO) (*dto.OCRResponseDTO, error)
}

// OCRService reads equipment rating plates and proposes matching catalog entries.
type OCRService struct {
	registry integrations.RegistryInterface
	catalog  CatalogServiceInterface
	logger   *zap.Logger
}

func NewOCRService(registry integrations.RegistryInterface, catalog CatalogServiceInterface, logger *zap.Logger) OCRServiceInterface {
	return &OCRService{registry: registry, catalog: catalog, logger: logger}
}

func (s *OCRService) Recognize(ctx context.Context, req dto.OCRRequestDTO) (*dto.OCRResponseDTO, error) {
	image, mimeType, err := utils.DecodeBase64Image(req.Image, ocrUploadContext)
	if err != nil {
		return nil, err
	}

	provider, err := s.registry.GetActive()
	if err != nil {
		s.logger.Error("no text recognizer configured", zap.Error(err))
		return nil, apperrors.ErrOCRUnavailable
	}

	text, err := provider.Recognize(ctx, image, mimeType)
	if err != nil {
		s.logger.Error("text recognition failed", zap.String("provider", provider.Name()), zap.Error(err))
		return nil, apperrors.ErrOCRUnavailable
	}

	return &dto.OCRResponseDTO{
		Text:        text.Text,
		Lines:       text.Lines,
		Confidence:  text.Confidence,
		Suggestions: s.catalog.Suggest(text.Text, maxOCRSuggestions),
	}, nil
}
