package services

import "errors"

// Sentinel errors shared by both request surfaces. Controllers map these to
// their own responses (re-rendered forms and redirects on the web surface,
// status codes and JSON bodies on the API surface).
var (
	// ErrValidation signals missing or malformed required input.
	ErrValidation = errors.New("missing required fields")

	// ErrConflict signals a uniqueness violation on username or email.
	ErrConflict = errors.New("user already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The message is deliberately the same for both so clients cannot
	// enumerate registered accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden signals an authenticated user acting on a post they do
	// not own.
	ErrForbidden = errors.New("forbidden")
)
