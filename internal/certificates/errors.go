package certificates

import (
	"fmt"

	apperrors "certificate-system/pkg/errors"
)

type UnknownFieldError struct {
	Kind  Kind
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s form has no field %q", e.Kind, e.Field)
}

func (e *UnknownFieldError) Unwrap() error {
	return apperrors.ErrUnknownField
}
