// Package workflow holds the behavioral rules of the job lifecycle:
// scheduling validation, status transitions, the capture gate and the
// error taxonomy the API layer maps to HTTP statuses. Everything here is
// a pure function over model snapshots so the same rules run inside the
// repository transactions and in the tests.
package workflow

// ValidationError reports client-correctable input problems (bad schedule,
// missing rejection reason, incomplete captures).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// AuthorizationError reports a caller acting outside their role or identity.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// NewAuthorizationError creates an AuthorizationError with the given message
func NewAuthorizationError(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}

// NotFoundError reports an unknown job, site, template, area or user.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewNotFoundError creates a NotFoundError with the given message
func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// ConflictError reports a state transition attempted from an invalid
// current status, or a concurrent-write collision.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError creates a ConflictError with the given message
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}
