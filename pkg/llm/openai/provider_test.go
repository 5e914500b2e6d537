package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristiansanchez/indice/pkg/llm"
)

func TestOpenAIProvider_Generate(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", srv.URL, "gpt-4o-mini", srv.Client())
	out, err := p.Generate(context.Background(), "return json", llm.WithTemperature(0.2))
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	require.NotNil(t, got.Temperature)
	assert.InDelta(t, 0.2, *got.Temperature, 1e-9)
}

func TestOpenAIProvider_ReasoningModelOmitsTemperature(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", srv.URL, "o4-mini", srv.Client())
	_, err := p.Generate(context.Background(), "json please", llm.WithTemperature(0.5))
	require.NoError(t, err)
	_, hasTemp := got["temperature"]
	assert.False(t, hasTemp)
}

func TestOpenAIProvider_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", srv.URL, "gpt-4o", srv.Client())
	_, err := p.Generate(context.Background(), "hi")

	var provErr *llm.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusTooManyRequests, provErr.StatusCode)
	assert.Equal(t, "openai", provErr.Provider)
	assert.Equal(t, "Rate limit reached", provErr.Message)
}

func TestOpenAIProvider_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", srv.URL, "gpt-4o", srv.Client())
	_, err := p.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}
