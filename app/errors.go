package app

import "fmt"

// The four recoverable failure kinds surfaced by the core services. All are
// matched by callers with errors.As; none are fatal to the process.

// ValidationError reports malformed or empty input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports that a referenced entity is absent.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// PermissionError reports that the actor lacks rights for a write.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	return e.Message
}

func permissionErrorf(format string, args ...interface{}) error {
	return &PermissionError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a unique-constraint collision, e.g. a double follow.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
