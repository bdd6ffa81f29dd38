package client

import (
	"errors"
	"fmt"
)

// UnknownErrorMessage is reported when the service fails without a message.
const UnknownErrorMessage = "Unknown error occurred"

// ServerError is an error reported by the crossword service.
type ServerError struct {
	// Status is the HTTP status code, or zero when the failure came from a
	// successful response with success=false.
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

func newServerError(status int, msg string) *ServerError {
	if msg == "" {
		msg = UnknownErrorMessage
		if status >= 400 {
			msg = fmt.Sprintf("%s (status %d)", UnknownErrorMessage, status)
		}
	}
	if status < 400 {
		status = 0
	}
	return &ServerError{Status: status, Message: msg}
}

// IsServerError reports whether err is or wraps a ServerError.
func IsServerError(err error) bool {
	var se *ServerError
	return errors.As(err, &se)
}
