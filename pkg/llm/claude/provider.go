// Package claude adapts the Anthropic Messages API to llm.LLMProvider.
package claude

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/cristiansanchez/indice/pkg/llm"
)

const defaultMaxTokens = 8192

type ClaudeProvider struct {
	client *anthropic.Client
	model  string
}

var _ llm.LLMProvider = &ClaudeProvider{}

// NewClaudeProvider builds a client with SDK retries disabled; failures are
// reported once.
func NewClaudeProvider(apiKey, baseURL, model string) *ClaudeProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := anthropic.NewClient(opts...)
	return &ClaudeProvider{client: &client, model: model}
}

func (p *ClaudeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.ApplyOptions(llm.Options{Model: p.model, MaxTokens: defaultMaxTokens, Temperature: -1}, options...)

	var system []anthropic.TextBlockParam
	messages := make([]anthropic.MessageParam, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case "system":
			system = append(system, anthropic.TextBlockParam{Text: msg.Content})
		case "assistant", "model":
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(opts.Model),
		MaxTokens: int64(opts.MaxTokens),
		Messages:  messages,
		System:    system,
	}
	if opts.Temperature >= 0 {
		params.Temperature = anthropic.Float(opts.Temperature)
	}

	response, err := p.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &llm.ProviderError{Provider: "anthropic", StatusCode: apiErr.StatusCode, Message: apiErr.Error()}
		}
		return "", err
	}

	var text strings.Builder
	for _, block := range response.Content {
		switch block := block.AsAny().(type) {
		case anthropic.TextBlock:
			text.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", llm.ErrEmptyResponse
	}
	return text.String(), nil
}

func (p *ClaudeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}
