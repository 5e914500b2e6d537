package claude

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristiansanchez/indice/pkg/llm"
)

func TestClaudeProvider_Generate(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/messages"), r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id":"msg_01","type":"message","role":"assistant","model":"claude-sonnet-4-5",
			"content":[{"type":"text","text":"{\"main_topic\":\"Go\"}"}],
			"stop_reason":"end_turn","usage":{"input_tokens":3,"output_tokens":5}
		}`))
	}))
	defer srv.Close()

	p := NewClaudeProvider("sk-ant-test", srv.URL+"/", "claude-sonnet-4-5")
	out, err := p.Generate(context.Background(), "index this", llm.WithMaxTokens(1024))
	require.NoError(t, err)
	assert.Equal(t, `{"main_topic":"Go"}`, out)
	assert.Equal(t, "claude-sonnet-4-5", body["model"])
	assert.EqualValues(t, 1024, body["max_tokens"])
}

func TestClaudeProvider_StatusErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()

	p := NewClaudeProvider("sk-ant-test", srv.URL+"/", "claude-sonnet-4-5")
	_, err := p.Generate(context.Background(), "hi")

	var provErr *llm.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusTooManyRequests, provErr.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
