package util

import "fmt"

// AuthError covers invalid credentials, duplicate registration, and
// unconfirmed email. Its message is surfaced to the user verbatim.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func NewAuthError(message string) *AuthError {
	return &AuthError{Message: message}
}

// PersistenceError wraps an insert/update/select rejected by the database,
// including ownership violations.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("persistence error in %s", e.Op)
	}
	return fmt.Sprintf("persistence error in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// ValidationError is a local form validation failure. No backend call was
// made; the message goes straight back to the form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NotFoundError marks a missing resource. For signed-URL requests it is
// treated as a no-op and never surfaced to the user.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}
