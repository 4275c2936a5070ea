package service

import (
	"errors"
	"fmt"
)

// Stable error kinds for the whole service layer. Handlers classify with
// errors.Is and map to HTTP codes; internal storage error text never
// reaches a client.
var (
	// ErrValidation covers malformed input, unsupported operations and
	// division by zero, detected before any repository mutation.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized is deliberately uniform: bad login credential,
	// unknown identity, inactive account and invalid/expired token all
	// surface as this one kind.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound covers a resource that is absent or owned by another
	// user; the two cases are indistinguishable on purpose.
	ErrNotFound = errors.New("not found")

	// ErrConflict reports a duplicate username or email on registration.
	ErrConflict = errors.New("already exists")

	// ErrStorageUnavailable wraps transient backing-store failures.
	// They surface to the caller; the service never retries.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func storageFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}
