package validator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrInvalidInput = errors.New("invalid input")

// Error carries the per-field messages of a rejected submission.
type Error struct {
	Fields FieldErrors
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid input: %s", strings.Join(names, ", "))
}

func (e *Error) Unwrap() error {
	return ErrInvalidInput
}

// SubmitValidator runs the submit step of each form's state machine.
type SubmitValidator struct{}

// DI
func NewSubmitValidator() *SubmitValidator {
	return &SubmitValidator{}
}

// Login
func (v *SubmitValidator) ValidateLogin(ctx context.Context, form LoginForm) error {
	return submit(&form)
}

// Signup
func (v *SubmitValidator) ValidateSignup(ctx context.Context, form SignupForm) error {
	return submit(&form)
}

// Checkout
func (v *SubmitValidator) ValidatePayment(ctx context.Context, form PaymentForm) error {
	return submit(&form)
}

func submit(form Form) error {
	errs, ok := NewFormState(form).Submit()
	if ok {
		return nil
	}
	return &Error{Fields: errs}
}
