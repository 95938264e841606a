package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Input validation
var (
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMaxBodySizeExceeded  = errors.New("max body size exceeded")
	ErrInvalidJSON          = errors.New("invalid JSON")
)

// Auth and CSRF
var (
	ErrMissingToken       = errors.New("missing access token")
	ErrInvalidToken       = errors.New("invalid access token")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCSRFRejected       = errors.New("CSRF token rejected")
)

func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	return newApiErr(http.StatusBadRequest, ErrMalformedPayload, "payload",
		fmt.Sprintf("Malformed %s payload", payloadType), cause)
}

func NewInvalidJSONError(cause error) *ApiErr {
	return newApiErr(http.StatusBadRequest, ErrInvalidJSON, "json", "Invalid JSON format", cause)
}

func NewMissingRequiredFieldError(field string) *ApiErr {
	return newApiErr(http.StatusBadRequest, ErrMissingRequiredField, field,
		fmt.Sprintf("Missing required field: %s", field), nil)
}

func NewInvalidFieldError(field, reason string) *ApiErr {
	return newApiErr(http.StatusBadRequest, ErrInvalidField, field,
		fmt.Sprintf("Invalid field %s: %s", field, reason), nil)
}

func NewUnsupportedMediaTypeError(contentType string, allowed []string) *ApiErr {
	return newApiErr(http.StatusUnsupportedMediaType, ErrUnsupportedMediaType, "content_type",
		fmt.Sprintf("Unsupported media type %s, expected one of %s", contentType, strings.Join(allowed, ", ")), nil)
}

func NewMaxBodySizeExceededError(maxBytes int64) *ApiErr {
	return newApiErr(http.StatusRequestEntityTooLarge, ErrMaxBodySizeExceeded, "body_size",
		fmt.Sprintf("Request body exceeds the %d byte limit", maxBytes), nil)
}

func NewMissingTokenError() *ApiErr {
	return newApiErr(http.StatusUnauthorized, ErrMissingToken, "authorization", "", nil)
}

func NewInvalidTokenError(cause error) *ApiErr {
	return newApiErr(http.StatusUnauthorized, ErrInvalidToken, "authorization", "", cause)
}

func NewTokenExpiredError() *ApiErr {
	return newApiErr(http.StatusUnauthorized, ErrTokenExpired, "authorization", "", nil)
}

func NewInvalidCredentialsError() *ApiErr {
	return newApiErr(http.StatusUnauthorized, ErrInvalidCredentials, "password", "", nil)
}

// NewCSRFError reports a rejected CSRF check. reason comes from the CSRF middleware.
func NewCSRFError(reason error) *ApiErr {
	details := "missing or invalid CSRF token"
	if reason != nil {
		details = reason.Error()
	}
	return newApiErr(http.StatusForbidden, ErrCSRFRejected, "csrf", details, nil)
}

func IsMissingRequiredFieldError(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}

func IsUnsupportedMediaTypeError(err error) bool {
	return errors.Is(err, ErrUnsupportedMediaType)
}

func IsMaxBodySizeExceededError(err error) bool {
	return errors.Is(err, ErrMaxBodySizeExceeded)
}
