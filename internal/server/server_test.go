package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cristiansanchez/indice/internal/bootstrap"
	"github.com/cristiansanchez/indice/internal/config"
	"github.com/cristiansanchez/indice/internal/pkg/logger"
	"github.com/cristiansanchez/indice/internal/repository/memory"
	"github.com/cristiansanchez/indice/pkg/llm"
	"github.com/cristiansanchez/indice/pkg/search"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexJSON = "```json\n" + `{
  "main_topic": "Go concurrency",
  "topic_summary": "Goroutines and channels.",
  "modules": [
    {"order": 1, "title": "Goroutines", "description": "Lightweight threads", "difficulty": "Beginner"},
    {"order": 2, "title": "Channels", "description": "Typed pipes", "difficulty": "Intermediate"}
  ]
}` + "\n```\nHope this helps!"

type fakeLLM struct {
	response string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt, model string, options ...llm.Option) (string, error) {
	return f.response, nil
}

func (f *fakeLLM) DefaultModel() string { return "gemini-2.5-flash" }

func (f *fakeLLM) Catalog() []llm.ModelInfo {
	return []llm.ModelInfo{{ID: "gemini-2.5-flash", Family: llm.FamilyGemini, Available: true}}
}

type fakeSearch struct{}

func (fakeSearch) Name() string { return "fake" }

func (fakeSearch) Search(ctx context.Context, req search.Request) ([]search.Result, error) {
	if req.Title == "Channels" {
		return nil, nil
	}
	return []search.Result{{Title: "Tour", URL: "https://go.dev/tour", Content: "A tour", Score: 0.8}}, nil
}

func testConfig(password string) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Port: "0", CorsAllowedOrigins: "http://localhost:5173", StaticDir: "./does-not-exist"},
		Auth:    config.AuthConfig{Password: password, CookieName: "indice_session"},
		Session: config.SessionConfig{Store: "memory", TTL: time.Hour},
		Ai:      config.AIConfig{DefaultModel: "gemini-2.5-flash"},
		Search:  config.SearchConfig{MaxResults: 5, MaxQueryLength: 400},
	}
}

func newTestApp(t *testing.T, password string) *fiber.App {
	t.Helper()
	cfg := testConfig(password)
	container := bootstrap.Assemble(bootstrap.Dependencies{
		Config:   cfg,
		Logger:   logger.NewNop(),
		LLM:      &fakeLLM{response: indexJSON},
		Search:   fakeSearch{},
		Sessions: memory.NewSessionRepository(time.Hour),
	})
	return New(cfg, container).GetApp()
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, cookies ...*http.Cookie) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	_ = json.Unmarshal(raw, &decoded)
	return resp, decoded
}

func login(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()
	resp, _ := doJSON(t, app, "POST", "/api/auth/login", `{"password": "open sesame"}`)
	require.Equal(t, 200, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == "indice_session" {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, "open sesame")
	resp, body := doJSON(t, app, "GET", "/health", "")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestCorsConfig(t *testing.T) {
	tests := []struct {
		name            string
		origins         string
		wantOrigins     string
		wantCredentials bool
	}{
		{"explicit origin", "http://localhost:5173", "http://localhost:5173", true},
		{"origin list", "https://a.example, https://b.example", "https://a.example, https://b.example", true},
		{"wildcard", "*", "*", false},
		{"empty", "  ", "*", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := corsConfig(tt.origins)
			assert.Equal(t, tt.wantOrigins, c.AllowOrigins)
			assert.Equal(t, tt.wantCredentials, c.AllowCredentials)
		})
	}
}

func TestNew_WildcardOriginsDoNotPanic(t *testing.T) {
	for _, origins := range []string{"*", ""} {
		cfg := testConfig("open sesame")
		cfg.App.CorsAllowedOrigins = origins
		container := bootstrap.Assemble(bootstrap.Dependencies{
			Config:   cfg,
			Logger:   logger.NewNop(),
			LLM:      &fakeLLM{response: indexJSON},
			Search:   fakeSearch{},
			Sessions: memory.NewSessionRepository(time.Hour),
		})

		assert.NotPanics(t, func() { New(cfg, container) }, "origins %q", origins)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app := newTestApp(t, "open sesame")

	resp, body := doJSON(t, app, "POST", "/api/index", `{"text": "goroutines"}`)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	req := httptest.NewRequest("GET", "/api/models", nil)
	req.Header.Set("Accept", "text/html")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 303, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/login"))
}

func TestLogin(t *testing.T) {
	app := newTestApp(t, "open sesame")

	resp, _ := doJSON(t, app, "POST", "/api/auth/login", `{"password": "wrong"}`)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Empty(t, resp.Cookies())

	resp, _ = doJSON(t, app, "POST", "/api/auth/login", `{}`)
	assert.Equal(t, 400, resp.StatusCode)

	cookie := login(t, app)
	assert.True(t, cookie.HttpOnly)

	_, body := doJSON(t, app, "GET", "/api/auth/session", "", cookie)
	assert.Equal(t, true, body["data"].(map[string]interface{})["authenticated"])
}

func TestLogin_PasswordNotConfigured(t *testing.T) {
	app := newTestApp(t, "")

	resp, body := doJSON(t, app, "POST", "/api/auth/login", `{"password": "anything"}`)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Contains(t, body["message"], "APP_PASSWORD")
}

func TestGenerateEnrichExport(t *testing.T) {
	app := newTestApp(t, "open sesame")
	cookie := login(t, app)

	resp, body := doJSON(t, app, "POST", "/api/index", `{"text": "notes about goroutines"}`, cookie)
	require.Equal(t, 200, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	index := data["index"].(map[string]interface{})
	assert.Equal(t, "Go concurrency", index["main_topic"])
	assert.Len(t, index["modules"], 2)

	resp, body = doJSON(t, app, "POST", "/api/index/enrich",
		`{"main_topic": "Go concurrency", "modules": [{"order": 1, "title": "Goroutines"}, {"order": 2, "title": "Channels"}]}`, cookie)
	require.Equal(t, 200, resp.StatusCode)
	modules := body["data"].(map[string]interface{})["modules"].([]interface{})
	require.Len(t, modules, 2)
	assert.Len(t, modules[0].(map[string]interface{})["resources"], 1)
	assert.Equal(t, []interface{}{}, modules[1].(map[string]interface{})["resources"])

	req := httptest.NewRequest("POST", "/api/index/export", strings.NewReader(
		`{"main_topic": "Go concurrency", "modules": [{"order": 1, "title": "Goroutines", "difficulty": "Beginner"}]}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/markdown")
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "## 1. Goroutines")
}

func TestGenerate_EmptyText(t *testing.T) {
	app := newTestApp(t, "open sesame")
	cookie := login(t, app)

	resp, _ := doJSON(t, app, "POST", "/api/index", `{"text": ""}`, cookie)
	assert.Equal(t, 400, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/index", `{"text": "   "}`, cookie)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestEnrich_EmptyModules(t *testing.T) {
	app := newTestApp(t, "open sesame")
	cookie := login(t, app)

	resp, _ := doJSON(t, app, "POST", "/api/index/enrich", `{"modules": []}`, cookie)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestEnrich_DuplicateOrders(t *testing.T) {
	app := newTestApp(t, "open sesame")
	cookie := login(t, app)

	resp, body := doJSON(t, app, "POST", "/api/index/enrich",
		`{"modules": [{"order": 1, "title": "Goroutines"}, {"order": 1, "title": "Channels"}]}`, cookie)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Contains(t, body["message"], "unique")
}

func TestModels(t *testing.T) {
	app := newTestApp(t, "open sesame")
	cookie := login(t, app)

	resp, body := doJSON(t, app, "GET", "/api/models", "", cookie)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "gemini-2.5-flash", body["data"].(map[string]interface{})["default"])
}

func TestLogoutRevokesSession(t *testing.T) {
	app := newTestApp(t, "open sesame")
	cookie := login(t, app)

	resp, _ := doJSON(t, app, "POST", "/api/auth/logout", "", cookie)
	require.Equal(t, 200, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/api/models", "", cookie)
	assert.Equal(t, 401, resp.StatusCode)
}
