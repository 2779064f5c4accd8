package certificates

import (
	"certificate-system/pkg/utils"
)

// FieldChange is one (field, value) update addressed by the form's JSON field name.
type FieldChange struct {
	Field string `json:"field" validate:"required"`
	Value any    `json:"value"`
}

// Patch is an ordered batch of field changes. Later entries win.
type Patch []FieldChange

// Fields lists the field names in order.
func (p Patch) Fields() []string {
	out := make([]string, 0, len(p))
	for _, c := range p {
		out = append(out, c.Field)
	}
	return out
}

// Get returns the last value written to field.
func (p Patch) Get(field string) (any, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Field == field {
			return p[i].Value, true
		}
	}
	return nil, false
}

// PatchEmitter receives field changes produced by the catalog auto-fill. The host owns
// persistence and batching.
type PatchEmitter interface {
	Emit(patch Patch)
}

// FieldChangeFunc adapts a per-field callback to PatchEmitter.
type FieldChangeFunc func(field string, value any)

func (f FieldChangeFunc) Emit(patch Patch) {
	for _, c := range patch {
		f(c.Field, c.Value)
	}
}

// ApplyPatch writes every change into form. Unknown fields are rejected before anything
// is written; a value of the wrong type stops at that field.
func ApplyPatch(form Form, patch Patch) error {
	for _, c := range patch {
		if !utils.HasJSONField(form, c.Field) {
			return &UnknownFieldError{Kind: form.Kind(), Field: c.Field}
		}
	}
	for _, c := range patch {
		if err := utils.ApplyFieldPatch(form, c.Field, c.Value); err != nil {
			return err
		}
	}
	return nil
}

// FormEmitter applies emitted patches to a form and keeps what was applied.
type FormEmitter struct {
	Form    Form
	Applied Patch
	Err     error
}

func NewFormEmitter(form Form) *FormEmitter {
	return &FormEmitter{Form: form}
}

func (e *FormEmitter) Emit(patch Patch) {
	if e.Err != nil {
		return
	}
	if err := ApplyPatch(e.Form, patch); err != nil {
		e.Err = err
		return
	}
	e.Applied = append(e.Applied, patch...)
}

// StringValue returns a string field of form, or "" when it is unset or not a string.
func StringValue(form Form, field string) string {
	v, _ := utils.JSONFieldValue(form, field)
	s, _ := v.(string)
	return s
}
