package integrations

import (
	"context"

	"certificate-system/internal/integrations/dto"
)

// TextRecognizer extracts text from an image.
type TextRecognizer interface {
	Name() string
	Recognize(ctx context.Context, image []byte, mimeType string) (*dto.RecognizedText, error)
}
