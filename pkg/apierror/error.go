package apierror

import "net/http"

// Error represents a structured API error response.
type Error struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// StatusText returns the canonical text for the error's HTTP status code.
func (e *Error) StatusText() string {
	return http.StatusText(e.StatusCode)
}

// BadRequest creates a 400 Bad Request error.
func BadRequest(message string) *Error {
	if message == "" {
		message = "invalid request"
	}
	return &Error{
		StatusCode: http.StatusBadRequest,
		Message:    message,
	}
}

// NotFound creates a 404 Not Found error.
func NotFound(message string) *Error {
	if message == "" {
		message = "resource not found"
	}
	return &Error{
		StatusCode: http.StatusNotFound,
		Message:    message,
	}
}

// MethodNotAllowed creates a 405 Method Not Allowed error.
func MethodNotAllowed(message string) *Error {
	if message == "" {
		message = "method not allowed"
	}
	return &Error{
		StatusCode: http.StatusMethodNotAllowed,
		Message:    message,
	}
}

// InternalError creates a 500 Internal Server Error. The message is what the
// caller sees, so internal detail never belongs here.
func InternalError(message string) *Error {
	if message == "" {
		message = "an unexpected error occurred"
	}
	return &Error{
		StatusCode: http.StatusInternalServerError,
		Message:    message,
	}
}
