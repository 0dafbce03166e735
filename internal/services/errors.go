package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned across the service boundary. Handlers translate
// these into HTTP status codes; nothing below the handlers knows about HTTP.
var (
	ErrNotFound           = errors.New("not found")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// Forbidden reasons.
const (
	ReasonNotOwner  = "not owner"
	ReasonClaimOnly = "claim-only"
)

// ForbiddenError is an authorization denial with a machine-readable reason.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return "forbidden: " + e.Reason
}

// IsForbidden reports whether err is an authorization denial and returns
// the reason when it is.
func IsForbidden(err error) (string, bool) {
	var fe *ForbiddenError
	if errors.As(err, &fe) {
		return fe.Reason, true
	}
	return "", false
}

// ValidationError reports required input fields that are missing.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
