package errors

import (
	"errors"
	"fmt"
)

// Common error types for the HRMS API client
var (
	// Credential errors
	ErrNotFound           = errors.New("not found")
	ErrNoAccessToken      = errors.New("no access token stored")
	ErrNoRefreshToken     = errors.New("no refresh token stored")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Session errors
	ErrSessionExpired = errors.New("session expired")
	ErrRefreshFailed  = errors.New("token refresh failed")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Request errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrMissingID      = errors.New("resource id is required")
	ErrUnsupported    = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New returns an error with the given text
func New(text string) error {
	return errors.New(text)
}
