// Package apperrors defines the sentinel errors shared across services and
// handlers. Services return these; the HTTP layer maps them to status codes
// with errors.Is and never leaks internal detail.
package apperrors

import "errors"

var (
	// ErrNotFound covers both a missing record and an ownership mismatch.
	// The two cases are deliberately indistinguishable so that one account
	// cannot probe for the existence of another account's tasks.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned when registering an already registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a bad email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountDisabled is returned when logging into a deactivated account.
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrCompletedRequired is returned when a status update omits the
	// completed field.
	ErrCompletedRequired = errors.New("completed field is required")

	// ErrInvalidResetToken is returned for an unknown or expired password
	// reset token.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)
