// Package search fetches external reading resources for learning modules.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxQueryLength is the longest query sent to a search provider.
const DefaultMaxQueryLength = 400

var (
	// ErrMissingCredential indicates the search API key is not configured.
	ErrMissingCredential = errors.New("search credential not configured")
)

// Result is a single web resource returned by a provider.
type Result struct {
	Title      string
	URL        string
	Content    string
	Score      float64
	RawContent string
}

// Request describes one module lookup. Query is already truncated by the
// caller; the module fields are for providers that build their own prompt.
type Request struct {
	Query      string
	MaxResults int
	// MaxQueryLength caps any text a provider derives from the module fields.
	// Zero means DefaultMaxQueryLength.
	MaxQueryLength int
	MainTopic   string
	Title       string
	Description string
}

// Provider defines the contract for any search backend
type Provider interface {
	Name() string
	Search(ctx context.Context, req Request) ([]Result, error)
}

// ProviderError is a non-2xx answer from a search vendor.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s search error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// MissingCredential wraps ErrMissingCredential with the env var to set.
func MissingCredential(provider, envVar string) error {
	return fmt.Errorf("%w: %s requires %s", ErrMissingCredential, provider, envVar)
}

// TruncateQuery collapses whitespace and cuts q to at most max runes.
func TruncateQuery(q string, max int) string {
	q = strings.Join(strings.Fields(q), " ")
	if max <= 0 || utf8.RuneCountInString(q) <= max {
		return q
	}
	return strings.TrimSpace(string([]rune(q)[:max]))
}
