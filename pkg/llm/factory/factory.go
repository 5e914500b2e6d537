package factory

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/cristiansanchez/indice/pkg/llm"
	"github.com/cristiansanchez/indice/pkg/llm/claude"
	"github.com/cristiansanchez/indice/pkg/llm/gemini"
	"github.com/cristiansanchez/indice/pkg/llm/ollama"
	"github.com/cristiansanchez/indice/pkg/llm/openai"
)

// Config carries vendor credentials and endpoints. Empty base URLs use the
// vendor default.
type Config struct {
	DefaultModel string

	GeminiAPIKey  string
	GeminiBaseURL string

	AnthropicAPIKey  string
	AnthropicBaseURL string

	OpenAIAPIKey  string
	OpenAIBaseURL string

	OllamaBaseURL string
}

// Dispatcher routes a prompt to the vendor whose model-name prefix matches.
// Vendor clients are created on first use so that a missing credential is
// reported per request rather than at startup.
type Dispatcher struct {
	cfg Config

	mu        sync.Mutex
	providers map[llm.Family]llm.LLMProvider
	gemini    *gemini.GeminiProvider
}

func NewDispatcher(cfg Config) *Dispatcher {
	return &Dispatcher{
		cfg:       cfg,
		providers: make(map[llm.Family]llm.LLMProvider),
	}
}

// DefaultModel is used when a request names no model.
func (d *Dispatcher) DefaultModel() string {
	return d.cfg.DefaultModel
}

// Generate sends prompt to the vendor serving model and returns its raw text.
func (d *Dispatcher) Generate(ctx context.Context, prompt, model string, options ...llm.Option) (string, error) {
	if model == "" {
		model = d.cfg.DefaultModel
	}
	family, vendorModel, err := llm.ResolveFamily(model)
	if err != nil {
		return "", err
	}

	provider, err := d.provider(ctx, family)
	if err != nil {
		return "", err
	}

	opts := append([]llm.Option{llm.WithModel(vendorModel)}, options...)
	return provider.Generate(ctx, prompt, opts...)
}

// Gemini returns the Gemini provider for grounded calls.
func (d *Dispatcher) Gemini(ctx context.Context) (*gemini.GeminiProvider, error) {
	if _, err := d.provider(ctx, llm.FamilyGemini); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gemini, nil
}

// Credential reports whether the vendor of model is configured.
func (d *Dispatcher) Credential(model string) error {
	family, _, err := llm.ResolveFamily(model)
	if err != nil {
		return err
	}
	switch family {
	case llm.FamilyGemini:
		if d.cfg.GeminiAPIKey == "" {
			return llm.MissingCredential("gemini", "GOOGLE_GEMINI_API_KEY")
		}
	case llm.FamilyAnthropic:
		if d.cfg.AnthropicAPIKey == "" {
			return llm.MissingCredential("anthropic", "ANTHROPIC_API_KEY")
		}
	case llm.FamilyOpenAI:
		if d.cfg.OpenAIAPIKey == "" {
			return llm.MissingCredential("openai", "OPENAI_API_KEY")
		}
	case llm.FamilyOllama:
		if d.cfg.OllamaBaseURL == "" {
			return llm.MissingCredential("ollama", "OLLAMA_BASE_URL")
		}
	}
	return nil
}

func (d *Dispatcher) provider(ctx context.Context, family llm.Family) (llm.LLMProvider, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.providers[family]; ok {
		return p, nil
	}

	var p llm.LLMProvider
	switch family {
	case llm.FamilyGemini:
		if d.cfg.GeminiAPIKey == "" {
			return nil, llm.MissingCredential("gemini", "GOOGLE_GEMINI_API_KEY")
		}
		g, err := gemini.NewGeminiProvider(ctx, d.cfg.GeminiAPIKey, d.cfg.GeminiBaseURL, "")
		if err != nil {
			return nil, err
		}
		d.gemini = g
		p = g
	case llm.FamilyAnthropic:
		if d.cfg.AnthropicAPIKey == "" {
			return nil, llm.MissingCredential("anthropic", "ANTHROPIC_API_KEY")
		}
		p = claude.NewClaudeProvider(d.cfg.AnthropicAPIKey, d.cfg.AnthropicBaseURL, "")
	case llm.FamilyOpenAI:
		if d.cfg.OpenAIAPIKey == "" {
			return nil, llm.MissingCredential("openai", "OPENAI_API_KEY")
		}
		p = openai.NewOpenAIProvider(d.cfg.OpenAIAPIKey, d.cfg.OpenAIBaseURL, "", http.DefaultClient)
	case llm.FamilyOllama:
		if d.cfg.OllamaBaseURL == "" {
			return nil, llm.MissingCredential("ollama", "OLLAMA_BASE_URL")
		}
		p = ollama.NewOllamaProvider(d.cfg.OllamaBaseURL, "")
	default:
		return nil, fmt.Errorf("%w: family %q", llm.ErrUnsupportedModel, family)
	}

	d.providers[family] = p
	return p, nil
}
