package vapi

import (
	"fmt"
	"strings"
)

// ConfigurationError means the provider credential is missing or malformed.
// The request never left the process.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "vapi configuration: " + e.Reason
}

// ProviderError wraps a failed call to the provider API. StatusCode is zero
// for transport failures; Body holds the upstream error payload when there is one.
type ProviderError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vapi %s: %v", e.Op, e.Err)
	}

	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("vapi %s: bad status: %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("vapi %s: bad status: %d: %s", e.Op, e.StatusCode, body)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
