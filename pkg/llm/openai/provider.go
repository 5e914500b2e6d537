package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cristiansanchez/indice/pkg/llm"
)

const DefaultBaseURL = "https://api.openai.com/v1"

// OpenAIProvider talks to the chat completions endpoint of OpenAI or any
// compatible router.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ llm.LLMProvider = &OpenAIProvider{}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []llm.Message   `json:"messages"`
	MaxTokens      int             `json:"max_completion_tokens,omitempty"`
	Temperature    *float64        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func NewOpenAIProvider(apiKey, baseURL, model string, client *http.Client) *OpenAIProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{}
	}
	return &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  client,
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.ApplyOptions(llm.Options{Model: p.model, Temperature: -1}, options...)

	reqBody := chatRequest{
		Model:          opts.Model,
		Messages:       history,
		MaxTokens:      opts.MaxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}
	// reasoning models reject an explicit temperature
	if opts.Temperature >= 0 && !isReasoningModel(opts.Model) {
		t := opts.Temperature
		reqBody.Temperature = &t
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatResponse
	decodeErr := json.Unmarshal(bodyBytes, &chatResp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(bodyBytes)
		if decodeErr == nil && chatResp.Error != nil && chatResp.Error.Message != "" {
			msg = chatResp.Error.Message
		}
		return "", &llm.ProviderError{Provider: "openai", StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if len(chatResp.Choices) == 0 || strings.TrimSpace(chatResp.Choices[0].Message.Content) == "" {
		return "", llm.ErrEmptyResponse
	}

	return chatResp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	messages := []llm.Message{
		{Role: "user", Content: prompt},
	}
	return p.Chat(ctx, messages, options...)
}

func isReasoningModel(model string) bool {
	m := strings.ToLower(model)
	return strings.HasPrefix(m, "o1") || strings.HasPrefix(m, "o3") || strings.HasPrefix(m, "o4") || strings.HasPrefix(m, "gpt-5")
}
