// Package apperr defines the domain errors shared by the store, services and
// HTTP handlers. Callers match them with errors.Is / errors.As.
package apperr

import "errors"

var (
	// ErrUnauthenticated covers a missing, invalid or expired token and a
	// token whose subject no longer exists.
	ErrUnauthenticated = errors.New("could not validate credentials")

	// ErrInvalidCredentials is returned by the login flow for an unknown
	// email or a wrong password.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	ErrForbidden = errors.New("not enough permissions")

	// ErrNotFound is also returned for resources owned by someone else.
	ErrNotFound = errors.New("not found")

	ErrConflict = errors.New("already exists")

	// ErrIntegrity is a store-level rejection that is not a uniqueness
	// conflict: check constraints, foreign keys, not-null columns.
	ErrIntegrity = errors.New("integrity constraint violated")
)

const (
	FieldUsername = "username"
	FieldEmail    = "email"
)

// ConflictError reports which unique field collided.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return "username or email already exists"
	}
	return e.Field + " already exists"
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
