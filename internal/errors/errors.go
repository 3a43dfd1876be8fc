package errors

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors used as markers for classifying failures across the
// service. Callers attach one of these via the builder's Mark method and
// the REST layer maps the marker to an HTTP status.
var (
	// ErrValidation indicates bad client input that the caller can correct.
	ErrValidation = errors.New("validation error")
	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConfiguration indicates an operator data gap, such as a missing
	// price reference for the active payment mode. It is not a user error.
	ErrConfiguration = errors.New("configuration error")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrExternalService indicates a call to a third-party service failed.
	ErrExternalService = errors.New("external service error")
	// ErrDatabase indicates a persistence operation failed after retries.
	ErrDatabase = errors.New("database error")
	// ErrPermissionDenied indicates missing or invalid credentials.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInternal is the catch-all for unexpected failures.
	ErrInternal = errors.New("internal error")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// IsValidation checks if the error is marked as a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound checks if the error is marked as a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConfiguration checks if the error is marked as a configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsAlreadyExists checks if the error is marked as an already exists error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsExternalService checks if the error is marked as an external service error.
func IsExternalService(err error) bool {
	return errors.Is(err, ErrExternalService)
}

// IsDatabase checks if the error is marked as a database error.
func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// IsPermissionDenied checks if the error is marked as a permission error.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}
