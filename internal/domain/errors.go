package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrResponseRejected marks AI output that cannot be treated as a single command.
	ErrResponseRejected = errors.New("response rejected")
	// ErrCancelled marks a declined confirmation.
	ErrCancelled = errors.New("operation cancelled")
	// ErrInterrupted is returned by prompters when input is aborted (Ctrl+C, EOF).
	ErrInterrupted = errors.New("prompt interrupted")
	// ErrMissingAPIKey is returned when no credential is configured.
	ErrMissingAPIKey = errors.New("API key is not configured")
)

// ProviderErrorKind classifies AI provider failures.
type ProviderErrorKind string

const (
	ProviderNetwork   ProviderErrorKind = "network"
	ProviderAuth      ProviderErrorKind = "auth"
	ProviderQuota     ProviderErrorKind = "quota"
	ProviderEmpty     ProviderErrorKind = "empty"
	ProviderMalformed ProviderErrorKind = "malformed"
	ProviderHTTP      ProviderErrorKind = "http"
)

// ProviderError is surfaced immediately and never retried by the orchestrator.
type ProviderError struct {
	Kind    ProviderErrorKind
	Status  int
	Message string
	Raw     string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("provider %s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("provider %s error", e.Kind)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Rejected wraps ErrResponseRejected with the concrete cause.
func Rejected(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrResponseRejected, fmt.Sprintf(format, args...))
}
