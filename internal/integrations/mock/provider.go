package mock

import (
	"context"
	"errors"
	"strings"

	"certificate-system/internal/integrations/dto"
)

// MockProvider returns canned text. Used in development and tests.
type MockProvider struct {
	Text       string
	ShouldFail bool
}

func NewMockProvider(text string) *MockProvider {
	return &MockProvider{Text: text}
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) Recognize(ctx context.Context, image []byte, mimeType string) (*dto.RecognizedText, error) {
	if m.ShouldFail {
		return nil, errors.New("mock recognizer failure")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &dto.RecognizedText{
		Provider:   m.Name(),
		Text:       m.Text,
		Lines:      strings.Split(m.Text, "\n"),
		Confidence: 1,
	}, nil
}
