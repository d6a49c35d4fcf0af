// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input errors.
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrParseFailure      = errors.New("parse failure")

	// Export errors.
	ErrExportFailure = errors.New("export failure")
	ErrNoListings    = errors.New("no listings to export")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsFatal reports whether an error must abort the session. Load and
// parse failures are fatal; export failures are reported but the
// session continues with the analysis already shown.
func IsFatal(err error) bool {
	return errors.Is(err, ErrSourceUnavailable) || errors.Is(err, ErrParseFailure)
}
