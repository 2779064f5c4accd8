package services

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"certificate-system/internal/dto"
	"certificate-system/internal/integrations"
	"certificate-system/internal/integrations/mock"
	apperrors "certificate-system/pkg/errors"
)

var pngImage = base64.StdEncoding.EncodeToString(append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...))

func newOCRService(t *testing.T, provider *mock.MockProvider) OCRServiceInterface {
	t.Helper()
	registry := integrations.NewRegistry()
	require.NoError(t, registry.Register(provider))
	require.NoError(t, registry.SetActive(provider.Name()))
	return NewOCRService(registry, NewCatalogService(loadCatalogs(t), zap.NewNop()), zap.NewNop())
}

func TestOCRService_RecognizeSuggestsCatalogEntries(t *testing.T) {
	svc := newOCRService(t, mock.NewMockProvider("SOLIS\nModel: S6-EH1P5K\nS6 EH1P 5K\nSerial 1234"))

	res, err := svc.Recognize(context.Background(), dto.OCRRequestDTO{Image: "data:image/png;base64," + pngImage})
	require.NoError(t, err)
	assert.Len(t, res.Lines, 4)
	assert.Equal(t, 1.0, res.Confidence)

	ids := make([]string, 0, len(res.Suggestions))
	for _, s := range res.Suggestions {
		ids = append(ids, s.ID)
	}
	assert.Contains(t, ids, "solis-s6-eh1p5k")
}

func TestOCRService_ProviderFailure(t *testing.T) {
	provider := mock.NewMockProvider("")
	provider.ShouldFail = true
	svc := newOCRService(t, provider)

	_, err := svc.Recognize(context.Background(), dto.OCRRequestDTO{Image: pngImage})
	assert.ErrorIs(t, err, apperrors.ErrOCRUnavailable)
}

func TestOCRService_RejectsNonImagePayload(t *testing.T) {
	svc := newOCRService(t, mock.NewMockProvider("text"))

	_, err := svc.Recognize(context.Background(), dto.OCRRequestDTO{Image: base64.StdEncoding.EncodeToString([]byte("plain text body"))})
	var invalid *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestOCRService_NoActiveProvider(t *testing.T) {
	svc := NewOCRService(integrations.NewRegistry(), NewCatalogService(loadCatalogs(t), zap.NewNop()), zap.NewNop())

	_, err := svc.Recognize(context.Background(), dto.OCRRequestDTO{Image: pngImage})
	assert.ErrorIs(t, err, apperrors.ErrOCRUnavailable)
}
