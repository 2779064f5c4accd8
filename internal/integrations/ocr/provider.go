package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"certificate-system/internal/integrations"
	"certificate-system/internal/integrations/dto"
)

const recognizePath = "/v1/recognize"

// Provider calls a JSON text-recognition service.
type Provider struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

func New(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) integrations.TextRecognizer {
	return &Provider{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger.Named("ocr_provider"),
	}
}

func (p *Provider) Name() string {
	return "http"
}

func (p *Provider) Recognize(ctx context.Context, image []byte, mimeType string) (*dto.RecognizedText, error) {
	payload, err := json.Marshal(recognizeRequest{
		Image:    base64.StdEncoding.EncodeToString(image),
		MimeType: mimeType,
		Language: "en",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+recognizePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build recognize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recognize request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read recognize response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		_ = json.Unmarshal(body, &e)
		return nil, fmt.Errorf("recognize service returned %s: %s", resp.Status, e.Error)
	}

	var parsed recognizeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode recognize response: %w", err)
	}
	p.logger.Debug("recognized image",
		zap.Int("bytes", len(image)),
		zap.Int("lines", len(parsed.Lines)),
		zap.Duration("latency", time.Since(start)),
	)

	out := &dto.RecognizedText{
		Provider:   p.Name(),
		Text:       parsed.Text,
		Confidence: parsed.Confidence,
		Lines:      make([]string, 0, len(parsed.Lines)),
	}
	for _, l := range parsed.Lines {
		out.Lines = append(out.Lines, l.Text)
	}
	if out.Text == "" && len(out.Lines) > 0 {
		out.Text = strings.Join(out.Lines, "\n")
	}
	return out, nil
}
