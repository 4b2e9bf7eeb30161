package availability

import (
	"errors"
	"fmt"
)

// ConfigurationError reports that a doctor's availability cannot be used to
// compute slots. It is a precondition failure, not a transient one.
type ConfigurationError struct {
	Code    string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeNotConfigured   = "notConfigured"
	CodeUnavailable     = "unavailable"
	CodeInvalidWindow   = "invalidWindow"
	CodeInvalidTimeZone = "invalidTimeZone"
)

func NewConfigurationError(code, msg string) error {
	return &ConfigurationError{Code: code, Message: msg}
}

var (
	ErrDoctorNotFound = errors.New("doctor not found")
	// ErrInvalidSlot is wrapped with the reason a requested slot was rejected.
	ErrInvalidSlot = errors.New("invalid slot")
)
