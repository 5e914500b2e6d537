package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Auth    AuthConfig
	Session SessionConfig
	Keys    APIKeys
	Ai      AIConfig
	Search  SearchConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	StaticDir          string
}

type AuthConfig struct {
	// Password is the shared access password, plain text or a bcrypt hash.
	Password      string
	SessionSecret string
	CookieName    string
	CookieSecure  bool
}

type SessionConfig struct {
	Store    string // "memory" or "redis"
	RedisURL string
	TTL      time.Duration
}

type APIKeys struct {
	GoogleGemini string
	Anthropic    string
	OpenAI       string
	Tavily       string
}

type AIConfig struct {
	DefaultModel     string
	GeminiBaseURL    string
	AnthropicBaseURL string
	OpenAIBaseURL    string
	OllamaBaseURL    string
	Timeout          time.Duration
}

type SearchConfig struct {
	Provider       string // "tavily" or "gemini"
	TavilyBaseURL  string
	GroundingModel string
	MaxResults     int
	MaxQueryLength int
	CacheTTL       time.Duration
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/indice.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			StaticDir:          getEnv("STATIC_DIR", "./web"),
		},
		Auth: AuthConfig{
			Password:      getEnv("APP_PASSWORD", ""),
			SessionSecret: getEnv("SESSION_SECRET", ""),
			CookieName:    getEnv("SESSION_COOKIE_NAME", "indice_session"),
			CookieSecure:  getEnvAsBool("SESSION_COOKIE_SECURE", false),
		},
		Session: SessionConfig{
			Store:    getEnv("SESSION_STORE", "memory"),
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
			TTL:      getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Anthropic:    getEnv("ANTHROPIC_API_KEY", ""),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			Tavily:       getEnv("TAVILY_API_KEY", ""),
		},
		Ai: AIConfig{
			DefaultModel:     getEnv("LLM_MODEL", "gemini-2.5-flash"),
			GeminiBaseURL:    getEnv("GEMINI_BASE_URL", ""),
			AnthropicBaseURL: getEnv("ANTHROPIC_BASE_URL", ""),
			OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", ""),
			OllamaBaseURL:    getEnv("OLLAMA_BASE_URL", ""),
			Timeout:          getEnvAsDuration("LLM_TIMEOUT", 0),
		},
		Search: SearchConfig{
			Provider:       getEnv("SEARCH_PROVIDER", "tavily"),
			TavilyBaseURL:  getEnv("TAVILY_BASE_URL", ""),
			GroundingModel: getEnv("SEARCH_GROUNDING_MODEL", "gemini-2.5-flash"),
			MaxResults:     getEnvAsInt("SEARCH_MAX_RESULTS", 5),
			MaxQueryLength: getEnvAsInt("SEARCH_QUERY_MAX_LENGTH", 400),
			CacheTTL:       getEnvAsDuration("SEARCH_CACHE_TTL", 30*time.Minute),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
