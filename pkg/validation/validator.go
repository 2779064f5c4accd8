package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"certificate-system/pkg/customvalidator"
)

// New builds the request validator: null.* support, the shared custom rules and one
// membership rule per entry of enums (tag -> allowed values).
func New(enums map[string][]string) (*validator.Validate, error) {
	v := validator.New()
	registerNullTypes(v)

	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		return nil, fmt.Errorf("register custom rules: %w", err)
	}
	for tag, allowed := range enums {
		if err := customvalidator.RegisterOneOf(v, tag, allowed); err != nil {
			return nil, fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return v, nil
}
