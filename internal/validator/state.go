package validator

import (
	"fmt"
	"slices"
)

// FormState tracks which fields the shopper has touched and the errors
// currently shown. Untouched fields never show an error until submit.
type FormState struct {
	form    Form
	touched map[Field]bool
	errors  FieldErrors
}

func NewFormState(form Form) *FormState {
	return &FormState{
		form:    form,
		touched: make(map[Field]bool),
		errors:  FieldErrors{},
	}
}

func (s *FormState) Form() Form {
	return s.form
}

// Change records a new value. Touched fields, and touched fields that depend
// on this one, are revalidated immediately.
func (s *FormState) Change(f Field, v string) error {
	if err := s.form.Set(f, v); err != nil {
		return fmt.Errorf("%w: %s", err, f)
	}
	if s.touched[f] {
		s.revalidate(f)
	}
	for _, dep := range s.form.Dependents(f) {
		if s.touched[dep] {
			s.revalidate(dep)
		}
	}
	return nil
}

// Blur marks f touched and validates it.
func (s *FormState) Blur(f Field) error {
	if !s.owns(f) {
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	s.touched[f] = true
	s.revalidate(f)
	return nil
}

// Submit touches every field and validates the whole form. ok is true when
// there are no errors.
func (s *FormState) Submit() (FieldErrors, bool) {
	for _, f := range s.form.Fields() {
		s.touched[f] = true
	}
	s.errors = Validate(s.form)
	return s.errors.Clone(), len(s.errors) == 0
}

// CanSubmit mirrors the disabled state of the submit button.
func (s *FormState) CanSubmit() bool {
	return len(Validate(s.form)) == 0
}

func (s *FormState) Touched(f Field) bool {
	return s.touched[f]
}

func (s *FormState) State(f Field) FieldState {
	switch {
	case !s.touched[f]:
		return FieldIdle
	case s.errors.Has(f):
		return FieldInvalid
	case s.form.Value(f) != "":
		return FieldValid
	default:
		return FieldIdle
	}
}

// Errors returns the messages visible to the shopper (touched fields only).
func (s *FormState) Errors() FieldErrors {
	out := FieldErrors{}
	for f, msg := range s.errors {
		if s.touched[f] {
			out[f] = msg
		}
	}
	return out
}

func (s *FormState) revalidate(f Field) {
	if msg := s.form.ValidateField(f); msg != "" {
		s.errors[f] = msg
		return
	}
	delete(s.errors, f)
}

func (s *FormState) owns(f Field) bool {
	return slices.Contains(s.form.Fields(), f)
}
