package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrInternal = errors.New("internal server error")

// ApiErr is an error that knows which HTTP status it maps to. Field names the
// offending input, if any; Cause keeps the underlying error for the logs.
type ApiErr struct {
	StatusCode int
	err        error
	Details    string
	Field      string
	Cause      error
}

func newApiErr(status int, err error, field, details string, cause error) *ApiErr {
	return &ApiErr{StatusCode: status, err: err, Field: field, Details: details, Cause: cause}
}

func (e *ApiErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

// Unwrap exposes the sentinel, so errors.Is(err, ErrNotFound) works on an ApiErr.
func (e *ApiErr) Unwrap() error {
	return e.err
}

// GetFullError follows the Cause chain: "outer: details -> inner -> root".
func (e *ApiErr) GetFullError() string {
	if e.Cause == nil {
		return e.Error()
	}
	var inner *ApiErr
	if errors.As(e.Cause, &inner) {
		return e.Error() + " -> " + inner.GetFullError()
	}
	return e.Error() + " -> " + e.Cause.Error()
}

// StatusOf returns the HTTP status err maps to; anything that is not an
// ApiErr is a 500.
func StatusOf(err error) int {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}

func NewInternalError(message string) *ApiErr {
	return newApiErr(http.StatusInternalServerError, errors.New(message), "", "", nil)
}

func NewInternalErrorWithCause(message string, cause error) *ApiErr {
	return newApiErr(http.StatusInternalServerError, errors.New(message), "", "", cause)
}
