package errors

import (
	"errors"
	"fmt"
)

// Common error types for the synchronization pipeline
var (
	// Authentication errors
	ErrAuthentication = errors.New("authentication failed")
	ErrNoAccessToken  = errors.New("no access token returned")
	ErrNoRefreshToken = errors.New("no refresh token available")

	// Remote API errors
	ErrRemoteAPI = errors.New("remote api request failed")
	ErrPageLimit = errors.New("page limit exceeded")

	// Argument errors
	ErrInvalidArgument = errors.New("invalid argument")

	// Configuration errors
	ErrConfiguration = errors.New("missing or invalid configuration")

	// Storage errors
	ErrStorage = errors.New("storage failure")
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
