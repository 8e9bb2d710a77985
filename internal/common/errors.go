package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// Form errors.
	ErrMissingFormFields = errors.New("missing form fields")

	// Signup errors.
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrWeakPassword     = errors.New("weak password")

	// Login errors.
	ErrUnknownEmail  = errors.New("email not registered")
	ErrWrongPassword = errors.New("incorrect password")

	// Session token errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Dataset and asset errors.
	ErrFileNotFound  = errors.New("file not found")
	ErrMissingColumn = errors.New("missing required column")
)
