package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage is returned when a key is missing in Redis.
	RedisNotFoundMessage = "redis key not found"
	// GatewayErrorMessage describes commerce gateway failures.
	GatewayErrorMessage = "commerce gateway operation failed"
	// ClassifierErrorMessage describes intent classifier failures.
	ClassifierErrorMessage = "intent classification failed"
)

// Error wraps an underlying error with an HTTP-style status and safe message.
type Error struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error with the provided information.
func New(err error, status int, message string) *Error {
	return &Error{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// WrapGateway wraps a commerce gateway error with a consistent status and message.
func WrapGateway(err error) *Error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, GatewayErrorMessage)
}

// WrapClassifier wraps an intent classifier error. Classifier failures are
// never surfaced to the user as hard errors; the wrapper exists for logging
// and errors.Is checks at the dispatch boundary.
func WrapClassifier(err error) *Error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, ClassifierErrorMessage)
}

// Is reports whether the target matches the underlying error or the Error itself.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to Error or the wrapped error in a chain.
func (e *Error) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**Error); ok {
		*t = e
		return true
	}
	return false
}
