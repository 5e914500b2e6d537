package factory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristiansanchez/indice/pkg/llm"
)

func TestDispatcher_MissingCredentialBeforeDispatch(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	d := NewDispatcher(Config{OpenAIBaseURL: srv.URL})
	_, err := d.Generate(context.Background(), "prompt", "gpt-4o")
	assert.ErrorIs(t, err, llm.ErrMissingCredential)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	assert.False(t, called)
}

func TestDispatcher_UnsupportedModel(t *testing.T) {
	d := NewDispatcher(Config{})
	_, err := d.Generate(context.Background(), "prompt", "mistral-large")
	assert.ErrorIs(t, err, llm.ErrUnsupportedModel)
}

func TestDispatcher_RoutesByPrefixAndDefault(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotModel = r.URL.Path
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"{\"a\":1}"},"done":true}`))
	}))
	defer srv.Close()

	d := NewDispatcher(Config{DefaultModel: "ollama/llama3", OllamaBaseURL: srv.URL})
	out, err := d.Generate(context.Background(), "prompt", "")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, out)
	assert.Equal(t, "/api/chat", gotModel)
}

func TestDispatcher_Catalog(t *testing.T) {
	d := NewDispatcher(Config{AnthropicAPIKey: "k"})
	catalog := d.Catalog()
	require.NotEmpty(t, catalog)

	for _, m := range catalog {
		assert.Equal(t, m.Family == llm.FamilyAnthropic, m.Available, m.ID)
	}
}
