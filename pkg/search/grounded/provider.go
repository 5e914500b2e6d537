// Package grounded finds module resources through a search-grounded Gemini
// call; the pages reported in the grounding metadata become the results.
package grounded

import (
	"context"

	"github.com/cristiansanchez/indice/pkg/llm"
	"github.com/cristiansanchez/indice/pkg/llm/gemini"
	"github.com/cristiansanchez/indice/pkg/prompt"
	"github.com/cristiansanchez/indice/pkg/search"
)

// Generator is the grounded-call surface of the Gemini provider.
type Generator interface {
	GenerateGrounded(ctx context.Context, prompt string, options ...llm.Option) (*gemini.GroundedAnswer, error)
}

// Resolver yields the Generator at request time, so a missing Gemini key is
// reported per request.
type Resolver func(ctx context.Context) (Generator, error)

type GroundedProvider struct {
	resolve Resolver
	model   string
}

var _ search.Provider = &GroundedProvider{}

func NewGroundedProvider(resolve Resolver, model string) *GroundedProvider {
	return &GroundedProvider{resolve: resolve, model: model}
}

func (p *GroundedProvider) Name() string {
	return "gemini"
}

func (p *GroundedProvider) Search(ctx context.Context, req search.Request) ([]search.Result, error) {
	gen, err := p.resolve(ctx)
	if err != nil {
		return nil, err
	}

	max := req.MaxQueryLength
	if max <= 0 {
		max = search.DefaultMaxQueryLength
	}
	title := req.Title
	if title == "" {
		title = req.Query
	}
	text, err := prompt.Build(prompt.OpEnrich, prompt.Input{
		MainTopic:   search.TruncateQuery(req.MainTopic, max),
		Title:       search.TruncateQuery(title, max),
		Description: search.TruncateQuery(req.Description, max),
	})
	if err != nil {
		return nil, err
	}

	answer, err := gen.GenerateGrounded(ctx, text, llm.WithModel(p.model))
	if err != nil {
		return nil, err
	}

	results := make([]search.Result, 0, len(answer.Sources))
	seen := make(map[string]bool, len(answer.Sources))
	for _, src := range answer.Sources {
		if seen[src.URI] {
			continue
		}
		seen[src.URI] = true
		results = append(results, search.Result{
			Title:   src.Title,
			URL:     src.URI,
			Content: src.Snippet,
			Score:   src.Score,
		})
		if req.MaxResults > 0 && len(results) == req.MaxResults {
			break
		}
	}
	return results, nil
}
