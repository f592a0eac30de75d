package service

// Validation failures. Neither declares an HTTP status, so both are
// answered with a 500 by the server's error responder.
var (
	ErrInvalidParams = &ValidationError{Message: "invalid params"}
	ErrAlreadyExists = &ValidationError{Message: "item already exists"}
)

// ValidationError is returned when caller input fails a precondition.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// PersistenceError wraps a failure of the underlying store.
type PersistenceError struct {
	msg   string
	cause error
}

func (e *PersistenceError) Error() string {
	return e.msg + ": " + e.cause.Error()
}

// Cause returns the store error, for use with errors.Cause.
func (e *PersistenceError) Cause() error {
	return e.cause
}

// Unwrap returns the store error, for use with the standard errors package.
func (e *PersistenceError) Unwrap() error {
	return e.cause
}
