package customvalidator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ukPostcodeRe = regexp.MustCompile(`^(GIR ?0AA|[A-Z]{1,2}[0-9][A-Z0-9]? ?[0-9][A-Z]{2})$`)

// RegisterCustomValidations registers the rules shared by all request DTOs.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("uk_postcode", isUKPostcode); err != nil {
		return err
	}
	if err := v.RegisterValidation("power_factor", isPowerFactor); err != nil {
		return err
	}
	return nil
}

// RegisterOneOf registers tag as a rule accepting only the listed string values.
func RegisterOneOf[S ~string](v *validator.Validate, tag string, allowed []S) error {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[string(a)] = struct{}{}
	}
	return v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		_, ok := set[fl.Field().String()]
		return ok
	})
}

// NormalizePostcode upper-cases a postcode and collapses its inner whitespace to one space.
func NormalizePostcode(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

func isUKPostcode(fl validator.FieldLevel) bool {
	return ukPostcodeRe.MatchString(NormalizePostcode(fl.Field().String()))
}

// isPowerFactor accepts numbers in (0, 1].
func isPowerFactor(fl validator.FieldLevel) bool {
	f := fl.Field()
	if !f.CanFloat() {
		return false
	}
	pf := f.Float()
	return pf > 0 && pf <= 1
}
