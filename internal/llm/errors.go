package llm

import "errors"

// Gateway failures are typed so callers can map them to stable error
// codes without string matching.

// AuthError means the provider rejected the configured credentials.
type AuthError struct {
	Provider string
	Status   int
}

func (e *AuthError) Error() string {
	return "llm auth rejected by " + e.Provider
}

// RateLimitError means the provider applied backpressure. It is surfaced,
// never silently retried.
type RateLimitError struct {
	Provider string
}

func (e *RateLimitError) Error() string {
	return "llm rate limited by " + e.Provider
}

// TimeoutError means no response arrived within the configured deadline.
type TimeoutError struct {
	Provider string
}

func (e *TimeoutError) Error() string {
	return "llm request to " + e.Provider + " timed out"
}

// ProviderError covers any other non-2xx provider response.
type ProviderError struct {
	Provider string
	Status   int
	Body     string
}

func (e *ProviderError) Error() string {
	return "llm provider " + e.Provider + " returned an error"
}

func IsAuthError(err error) bool {
	var target *AuthError
	return errors.As(err, &target)
}

func IsRateLimitError(err error) bool {
	var target *RateLimitError
	return errors.As(err, &target)
}

func IsTimeoutError(err error) bool {
	var target *TimeoutError
	return errors.As(err, &target)
}

func IsProviderError(err error) bool {
	var target *ProviderError
	return errors.As(err, &target)
}

// IsGatewayError reports whether err is any typed LLM gateway failure.
func IsGatewayError(err error) bool {
	return IsAuthError(err) || IsRateLimitError(err) || IsTimeoutError(err) || IsProviderError(err)
}
