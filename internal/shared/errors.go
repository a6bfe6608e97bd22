package shared

import (
	"errors"
	"fmt"
)

// RequestError is used when we want a specific error message and StatusCode.
// Sane defaults are listed below. For routes that need custom error messages,
// a request error can be generated and a handler expects the router to return
// the exact message inside the request error msg.
type RequestError struct {
	StatusCode int
	Err        error
}

func (r *RequestError) Error() string {
	return fmt.Sprintf("status %d: err %v", r.StatusCode, r.Err)
}

var (
	ErrMissingAuth  = &RequestError{Err: errors.New("missing authorization header"), StatusCode: 401}
	ErrUnauthorized = &RequestError{Err: errors.New("unauthorized"), StatusCode: 401}

	ErrInvalidRequest = &RequestError{Err: errors.New("invalid request body"), StatusCode: 400}
	ErrMissingInput   = &RequestError{Err: errors.New("input is required"), StatusCode: 400}
	ErrUploadTooLarge = &RequestError{Err: errors.New("uploaded file too large"), StatusCode: 413}
	ErrRateLimited    = &RequestError{Err: errors.New("too many requests"), StatusCode: 429}

	ErrInternalServerError = &RequestError{Err: errors.New("internal server error"), StatusCode: 500}
)
