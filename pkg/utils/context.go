package utils

import (
	"context"

	"certificate-system/pkg/contextkeys"
	apperrors "certificate-system/pkg/errors"
)

// GetInstallerIDFromCtx returns the installer id placed in the context by the auth middleware.
func GetInstallerIDFromCtx(ctx context.Context) (string, error) {
	id, ok := ctx.Value(contextkeys.InstallerIDKey).(string)
	if !ok || id == "" {
		return "", apperrors.ErrInstallerIDNotFoundInContext
	}
	return id, nil
}
