package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SEARCH_QUERY_MAX_LENGTH", "")
	t.Setenv("LLM_MODEL", "gemini-2.5-flash")

	cfg := Load()
	assert.Equal(t, 400, cfg.Search.MaxQueryLength)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, "gemini-2.5-flash", cfg.Ai.DefaultModel)
	assert.Equal(t, "indice_session", cfg.Auth.CookieName)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SEARCH_QUERY_MAX_LENGTH", "120")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("SEARCH_PROVIDER", "gemini")
	t.Setenv("GO_ENV", "production")

	cfg := Load()
	assert.Equal(t, 120, cfg.Search.MaxQueryLength)
	assert.Equal(t, 90*time.Minute, cfg.Session.TTL)
	assert.True(t, cfg.Auth.CookieSecure)
	assert.Equal(t, "gemini", cfg.Search.Provider)
	assert.True(t, cfg.IsProduction())
}

func TestGetEnvAsInt_Invalid(t *testing.T) {
	t.Setenv("SEARCH_MAX_RESULTS", "many")
	assert.Equal(t, 5, getEnvAsInt("SEARCH_MAX_RESULTS", 5))
}
