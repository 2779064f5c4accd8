package utils

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"certificate-system/config"
	apperrors "certificate-system/pkg/errors"
)

// DecodeBase64Image decodes a base64 payload (optionally a data: URL) and checks it
// against the rules of the upload context. It returns the raw bytes and detected MIME type.
func DecodeBase64Image(payload string, contextName string) ([]byte, string, error) {
	rules, ok := config.UploadContexts[contextName]
	if !ok {
		return nil, "", fmt.Errorf("unknown upload context: %s", contextName)
	}

	if i := strings.Index(payload, ","); strings.HasPrefix(payload, "data:") && i > 0 {
		payload = payload[i+1:]
	}
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, "", apperrors.NewInvalidInputError("image is empty")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", apperrors.NewInvalidInputError("image is not valid base64: %v", err)
	}

	if rules.MaxSizeMB > 0 {
		maxSizeBytes := rules.MaxSizeMB * 1024 * 1024
		if int64(len(data)) > maxSizeBytes {
			return nil, "", apperrors.NewInvalidInputError("image size (%d KB) exceeds the %d MB limit", len(data)/1024, rules.MaxSizeMB)
		}
	}

	mimeType := http.DetectContentType(data)
	if !slices.Contains(rules.AllowedMimeTypes, mimeType) {
		return nil, "", apperrors.NewInvalidInputError("unsupported image type: %s", mimeType)
	}
	return data, mimeType, nil
}
