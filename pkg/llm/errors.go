package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential indicates the vendor API key is not configured.
	ErrMissingCredential = errors.New("llm credential not configured")

	// ErrUnsupportedModel indicates no vendor family matches the model name.
	ErrUnsupportedModel = errors.New("unsupported model")

	// ErrEmptyResponse indicates the vendor answered without any text.
	ErrEmptyResponse = errors.New("empty llm response")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")
)

// ProviderError is a non-2xx answer from an LLM vendor.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s api error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// ParseError carries the raw model output that failed normalization.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidOutput, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrInvalidOutput, e.Err}
}

// MissingCredential wraps ErrMissingCredential with the env var to set.
func MissingCredential(provider, envVar string) error {
	return fmt.Errorf("%w: %s requires %s", ErrMissingCredential, provider, envVar)
}
