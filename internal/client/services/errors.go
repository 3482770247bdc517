package services

import "errors"

var (
	// ErrValidation marks input rejected before anything is sent to the
	// backend. The wrapped error names the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrNotLoggedIn is returned by operations that need a current user.
	ErrNotLoggedIn = errors.New("not logged in")
)
