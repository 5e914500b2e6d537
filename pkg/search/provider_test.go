package search

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateQuery(t *testing.T) {
	long := strings.Repeat("a", DefaultMaxQueryLength+100)
	got := TruncateQuery(long, DefaultMaxQueryLength)
	assert.Equal(t, DefaultMaxQueryLength, utf8.RuneCountInString(got))

	assert.Equal(t, "go channels", TruncateQuery("  go \n channels ", DefaultMaxQueryLength))
	assert.Equal(t, "ñandú", TruncateQuery("ñandú rápido", 5))
	assert.Equal(t, "short", TruncateQuery("short", 0))
}

type countingProvider struct {
	calls   int
	results []Result
	err     error
}

func (p *countingProvider) Name() string { return "fake" }

func (p *countingProvider) Search(ctx context.Context, req Request) ([]Result, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.results, nil
}

func TestCachedProvider_ReusesResults(t *testing.T) {
	next := &countingProvider{results: []Result{{Title: "Tour", URL: "https://go.dev/tour"}}}
	p := NewCachedProvider(next, time.Minute)

	first, err := p.Search(context.Background(), Request{Query: "go", MaxResults: 5})
	require.NoError(t, err)
	first[0].Title = "mutated"

	second, err := p.Search(context.Background(), Request{Query: "go", MaxResults: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, "Tour", second[0].Title)

	_, err = p.Search(context.Background(), Request{Query: "rust", MaxResults: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachedProvider_KeysOnModuleFields(t *testing.T) {
	next := &countingProvider{results: []Result{{Title: "Tour", URL: "https://go.dev/tour"}}}
	p := NewCachedProvider(next, time.Minute)

	// same truncated query, different modules
	_, err := p.Search(context.Background(), Request{Query: "go", Title: "Go basics"})
	require.NoError(t, err)
	_, err = p.Search(context.Background(), Request{Query: "go", Title: "Go generics"})
	require.NoError(t, err)
	_, err = p.Search(context.Background(), Request{Query: "go", Title: "Go generics", Description: "type parameters"})
	require.NoError(t, err)
	assert.Equal(t, 3, next.calls)

	_, err = p.Search(context.Background(), Request{Query: "go", Title: "Go generics", Description: "type parameters"})
	require.NoError(t, err)
	assert.Equal(t, 3, next.calls)
}

func TestCachedProvider_DoesNotCacheErrors(t *testing.T) {
	next := &countingProvider{err: errors.New("boom")}
	p := NewCachedProvider(next, time.Minute)

	_, err := p.Search(context.Background(), Request{Query: "go"})
	assert.Error(t, err)
	_, err = p.Search(context.Background(), Request{Query: "go"})
	assert.Error(t, err)
	assert.Equal(t, 2, next.calls)
}
