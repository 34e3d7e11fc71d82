package provider

import (
	"fmt"
	"strings"
)

// ConfigurationError is returned before any I/O when a provider cannot be
// built, typically because its credential is missing.
type ConfigurationError struct {
	Provider Name
	EnvVars  []string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Provider, e.Reason)
	if len(e.EnvVars) > 0 {
		msg += fmt.Sprintf(" (set %s)", strings.Join(e.EnvVars, " or "))
	}
	return msg
}

// TransportError reports a non-success status from the remote API.
type TransportError struct {
	Provider   Name
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: API request failed with status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// ParseError reports an answer that is not valid JSON.
type ParseError struct {
	Provider Name
	Raw      string
	Err      error
}

func (e *ParseError) Error() string {
	return prefixed(e.Provider, fmt.Sprintf("failed to parse JSON response: %v\nResponse: %s", e.Err, e.Raw))
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConstructionError reports valid JSON that does not populate the expected
// response shape.
type ConstructionError struct {
	Provider Name
	Raw      string
	Err      error
}

func (e *ConstructionError) Error() string {
	return prefixed(e.Provider, fmt.Sprintf("failed to create response model: %v\nResponse: %s", e.Err, e.Raw))
}

func (e *ConstructionError) Unwrap() error { return e.Err }

func prefixed(p Name, msg string) string {
	if p == "" {
		return msg
	}
	return string(p) + ": " + msg
}
