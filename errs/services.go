package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotificationFailed = errors.New("notification failed")
	ErrConfigMissing      = errors.New("configuration missing")
	ErrConfigInvalid      = errors.New("configuration invalid")
)

// NewNotificationError wraps a failed email or SMS delivery. Callers log it;
// it never reaches the client that submitted the inquiry.
func NewNotificationError(channel string, cause error) *ApiErr {
	return newApiErr(http.StatusBadGateway, ErrNotificationFailed, channel,
		fmt.Sprintf("Failed to deliver %s notification", channel), cause)
}

func NewConfigMissingError(key string) *ApiErr {
	return newApiErr(http.StatusInternalServerError, ErrConfigMissing, key,
		fmt.Sprintf("%s is not configured", key), nil)
}

func NewConfigInvalidError(key, reason string) *ApiErr {
	return newApiErr(http.StatusInternalServerError, ErrConfigInvalid, key,
		fmt.Sprintf("%s is invalid: %s", key, reason), nil)
}

func IsNotificationError(err error) bool {
	return errors.Is(err, ErrNotificationFailed)
}

func IsConfigMissingError(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}
