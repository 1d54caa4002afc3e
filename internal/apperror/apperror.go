// Package apperror defines the error taxonomy shared by services and the HTTP
// layer. Every error that reaches a client carries an HTTP status and a
// client-safe message; the wrapped cause stays available for logging.
package apperror

import "net/http"

type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports missing or malformed input.
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Conflict reports a duplicate where uniqueness is required.
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// InvalidCredentials covers both unknown email and wrong password so the two
// are indistinguishable to callers. The 404 status matches the existing
// external behavior of the API.
func InvalidCredentials() *Error {
	return &Error{Status: http.StatusNotFound, Message: "Invalid login credentials"}
}

// NotFound reports a missing resource.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Internal wraps an unexpected failure. The cause is preserved for logs; only
// the message is shown to clients.
func Internal(message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message, Err: err}
}
