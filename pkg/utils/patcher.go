// pkg/utils/patcher.go
package utils

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"

	apperrors "certificate-system/pkg/errors"

	"github.com/aarondl/null/v8"
)

// jsonFieldIndex finds the struct field whose json tag name is field.
func jsonFieldIndex(t reflect.Type, field string) (int, bool) {
	for i := 0; i < t.NumField(); i++ {
		name := strings.Split(t.Field(i).Tag.Get("json"), ",")[0]
		if name == field && name != "" && name != "-" {
			return i, true
		}
	}
	return 0, false
}

// HasJSONField reports whether entity (a pointer to struct) has a field tagged field.
func HasJSONField(entity interface{}, field string) bool {
	v := reflect.ValueOf(entity)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return false
	}
	_, ok := jsonFieldIndex(v.Elem().Type(), field)
	return ok
}

// JSONFieldValue returns the value of the field tagged field, dereferencing pointers.
// A nil pointer reports (nil, true).
func JSONFieldValue(entity interface{}, field string) (interface{}, bool) {
	v := reflect.ValueOf(entity)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil, false
	}
	idx, ok := jsonFieldIndex(v.Elem().Type(), field)
	if !ok {
		return nil, false
	}
	f := v.Elem().Field(idx)
	if f.Kind() == reflect.Ptr {
		if f.IsNil() {
			return nil, true
		}
		f = f.Elem()
	}
	return f.Interface(), true
}

// ApplyFieldPatch sets the field of entity addressed by its json name. nil clears it.
// Numeric values are converted to the field's type; a fractional value for an integer
// field or a value of another kind is an InvalidInputError.
func ApplyFieldPatch(entity interface{}, field string, value interface{}) error {
	v := reflect.ValueOf(entity)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return apperrors.NewInvalidInputError("patch target must be a pointer to struct")
	}
	entityValue := v.Elem()
	idx, ok := jsonFieldIndex(entityValue.Type(), field)
	if !ok {
		return apperrors.ErrUnknownField
	}
	target := entityValue.Field(idx)
	if !target.CanSet() {
		return apperrors.ErrUnknownField
	}

	value = unwrapNull(value)
	if value == nil {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}

	baseType := target.Type()
	isPtr := baseType.Kind() == reflect.Ptr
	if isPtr {
		baseType = baseType.Elem()
	}

	converted, err := convertPatchValue(value, baseType)
	if err != nil {
		return apperrors.NewInvalidInputError("field %s: %v", field, err)
	}

	if isPtr {
		ptr := reflect.New(baseType)
		ptr.Elem().Set(converted)
		target.Set(ptr)
	} else {
		target.Set(converted)
	}
	return nil
}

// unwrapNull turns null.* wrappers coming from DTOs into plain values or nil.
func unwrapNull(value interface{}) interface{} {
	switch v := value.(type) {
	case null.String:
		if !v.Valid {
			return nil
		}
		return v.String
	case null.Int:
		if !v.Valid {
			return nil
		}
		return v.Int
	case null.Float64:
		if !v.Valid {
			return nil
		}
		return v.Float64
	case null.Bool:
		if !v.Valid {
			return nil
		}
		return v.Bool
	}
	return value
}

func convertPatchValue(value interface{}, to reflect.Type) (reflect.Value, error) {
	if n, ok := value.(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return reflect.Value{}, err
		}
		value = f
	}

	src := reflect.ValueOf(value)
	switch to.Kind() {
	case reflect.String:
		if src.Kind() == reflect.String {
			return src.Convert(to), nil
		}
	case reflect.Bool:
		if src.Kind() == reflect.Bool {
			return src.Convert(to), nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch src.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return src.Convert(to), nil
		case reflect.Float32, reflect.Float64:
			f := src.Float()
			if f != math.Trunc(f) {
				return reflect.Value{}, apperrors.NewInvalidInputError("expected an integer, got %v", f)
			}
			return reflect.ValueOf(int64(f)).Convert(to), nil
		}
	case reflect.Float32, reflect.Float64:
		switch src.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return src.Convert(to), nil
		}
	}
	return reflect.Value{}, apperrors.NewInvalidInputError("cannot assign %T to a %s field", value, to)
}
