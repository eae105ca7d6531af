package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrAuthExpired       = errors.New("session expired")
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError is a response with a non-2xx status.
type StatusError struct {
	Code int
	// Message is the server's "message" field, empty when absent.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("status %d", e.Code)
}
