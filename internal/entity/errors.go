package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrNoCurrentAnswer = errors.New("no question has been answered in this session")

	// Export errors
	ErrExportFailed = errors.New("export failed")

	// Completion endpoint errors
	ErrNoChoices = errors.New("no choices returned")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
