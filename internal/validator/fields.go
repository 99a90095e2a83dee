package validator

import (
	"errors"
	"maps"
)

var ErrUnknownField = errors.New("unknown field")

// Field names a form input. The set is closed: every form declares the
// fields it owns and rejects the rest.
type Field string

const (
	FieldFirstName       Field = "first_name"
	FieldLastName        Field = "last_name"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirm_password"
	FieldAddress         Field = "address"
	FieldCity            Field = "city"
	FieldZipCode         Field = "zip_code"
	FieldCardNumber      Field = "card_number"
	FieldExpiryDate      Field = "expiry_date"
	FieldCVV             Field = "cvv"
	FieldCardName        Field = "card_name"
)

// FieldErrors maps a field to its current message. Fields without an error
// are absent.
type FieldErrors map[Field]string

func (e FieldErrors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	maps.Copy(out, e)
	return out
}

// FieldState is what the shopper sees next to an input.
type FieldState string

const (
	FieldIdle    FieldState = "idle"
	FieldInvalid FieldState = "invalid"
	FieldValid   FieldState = "valid"
)
