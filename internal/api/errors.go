package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned on 401 responses; the caller should prompt for
// a fresh login.
var ErrUnauthorized = errors.New("unauthorized")

// AuthError is a login or signup the backend rejected. These arrive as a
// 200 response with success:false, so they are not status anomalies.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "authentication failed"
}

// StatusError is a non-2xx backend response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Code)
}
