package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cristiansanchez/indice/pkg/search"
)

const DefaultBaseURL = "https://api.tavily.com"

type TavilyProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ search.Provider = &TavilyProvider{}

type searchRequest struct {
	Query             string `json:"query"`
	MaxResults        int    `json:"max_results,omitempty"`
	SearchDepth       string `json:"search_depth"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

type searchResponse struct {
	Results []struct {
		Title      string  `json:"title"`
		URL        string  `json:"url"`
		Content    string  `json:"content"`
		Score      float64 `json:"score"`
		RawContent *string `json:"raw_content"`
	} `json:"results"`
}

type errorResponse struct {
	Detail struct {
		Error string `json:"error"`
	} `json:"detail"`
}

func NewTavilyProvider(apiKey, baseURL string, client *http.Client) *TavilyProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{}
	}
	return &TavilyProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (p *TavilyProvider) Name() string {
	return "tavily"
}

func (p *TavilyProvider) Search(ctx context.Context, req search.Request) ([]search.Result, error) {
	if p.apiKey == "" {
		return nil, search.MissingCredential("tavily", "TAVILY_API_KEY")
	}

	reqBody := searchRequest{
		Query:             req.Query,
		MaxResults:        req.MaxResults,
		SearchDepth:       "advanced",
		IncludeRawContent: true,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/search", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("tavily request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(bodyBytes)
		var errResp errorResponse
		if json.Unmarshal(bodyBytes, &errResp) == nil && errResp.Detail.Error != "" {
			msg = errResp.Detail.Error
		}
		return nil, &search.ProviderError{Provider: "tavily", StatusCode: resp.StatusCode, Message: msg}
	}

	var searchResp searchResponse
	if err := json.Unmarshal(bodyBytes, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]search.Result, 0, len(searchResp.Results))
	for _, r := range searchResp.Results {
		if req.MaxResults > 0 && len(results) == req.MaxResults {
			break
		}
		res := search.Result{
			Title:   r.Title,
			URL:     r.URL,
			Content: r.Content,
			Score:   r.Score,
		}
		if r.RawContent != nil {
			res.RawContent = *r.RawContent
		}
		results = append(results, res)
	}
	return results, nil
}
