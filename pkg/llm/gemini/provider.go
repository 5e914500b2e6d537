// Package gemini adapts the Google Gemini API (google.golang.org/genai) to
// llm.LLMProvider and exposes search-grounded generation.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/cristiansanchez/indice/pkg/llm"
)

type GeminiProvider struct {
	client *genai.Client
	model  string
}

var _ llm.LLMProvider = &GeminiProvider{}

// GroundingSource is one web page the model consulted during a grounded call.
type GroundingSource struct {
	Title   string
	URI     string
	Snippet string
	Score   float64
}

// GroundedAnswer is the text of a grounded call plus its sources.
type GroundedAnswer struct {
	Text    string
	Sources []GroundingSource
}

func NewGeminiProvider(ctx context.Context, apiKey, baseURL, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, llm.MissingCredential("gemini", "GOOGLE_GEMINI_API_KEY")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.ApplyOptions(llm.Options{Model: p.model, Temperature: -1}, options...)

	contents, config := buildRequest(history, opts)
	config.ResponseMIMEType = "application/json"

	resp, err := p.client.Models.GenerateContent(ctx, opts.Model, contents, config)
	if err != nil {
		return "", wrapError(err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

// GenerateGrounded runs the prompt with the Google Search tool enabled and
// returns the pages reported in the grounding metadata.
func (p *GeminiProvider) GenerateGrounded(ctx context.Context, prompt string, options ...llm.Option) (*GroundedAnswer, error) {
	opts := llm.ApplyOptions(llm.Options{Model: p.model, Temperature: -1}, options...)

	contents, config := buildRequest([]llm.Message{{Role: "user", Content: prompt}}, opts)
	config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}

	resp, err := p.client.Models.GenerateContent(ctx, opts.Model, contents, config)
	if err != nil {
		return nil, wrapError(err)
	}

	answer := &GroundedAnswer{Text: resp.Text()}
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return answer, nil
	}

	meta := resp.Candidates[0].GroundingMetadata
	sources := make([]GroundingSource, 0, len(meta.GroundingChunks))
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			sources = append(sources, GroundingSource{})
			continue
		}
		sources = append(sources, GroundingSource{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}

	// attach the supported text segment and best confidence to each chunk
	for _, support := range meta.GroundingSupports {
		if support == nil {
			continue
		}
		for i, idx := range support.GroundingChunkIndices {
			if int(idx) < 0 || int(idx) >= len(sources) {
				continue
			}
			src := &sources[idx]
			if src.Snippet == "" && support.Segment != nil {
				src.Snippet = support.Segment.Text
			}
			if i < len(support.ConfidenceScores) && float64(support.ConfidenceScores[i]) > src.Score {
				src.Score = float64(support.ConfidenceScores[i])
			}
		}
	}

	for _, src := range sources {
		if src.URI != "" {
			answer.Sources = append(answer.Sources, src)
		}
	}
	return answer, nil
}

func buildRequest(history []llm.Message, opts *llm.Options) ([]*genai.Content, *genai.GenerateContentConfig) {
	config := &genai.GenerateContentConfig{}
	if opts.Temperature >= 0 {
		config.Temperature = genai.Ptr(float32(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}

	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case "system":
			config.SystemInstruction = genai.NewContentFromText(msg.Content, genai.RoleUser)
		case "assistant", "model":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	return contents, config
}

func wrapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &llm.ProviderError{Provider: "gemini", StatusCode: apiErr.Code, Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &llm.ProviderError{Provider: "gemini", StatusCode: apiErrPtr.Code, Message: apiErrPtr.Message}
	}
	return fmt.Errorf("gemini request failed: %w", err)
}
