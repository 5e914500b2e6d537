package mapper

import (
	"strings"

	"github.com/cristiansanchez/indice/internal/dto"
	"github.com/cristiansanchez/indice/internal/entity"
	"github.com/cristiansanchez/indice/pkg/llm"
	"github.com/cristiansanchez/indice/pkg/search"
)

type LearningMapper struct{}

func NewLearningMapper() *LearningMapper {
	return &LearningMapper{}
}

// ToResources maps at most max search results to resources, skipping results
// without a URL. The returned slice is never nil.
func (m *LearningMapper) ToResources(results []search.Result, max int) []entity.Resource {
	resources := make([]entity.Resource, 0, len(results))
	for _, r := range results {
		if strings.TrimSpace(r.URL) == "" {
			continue
		}
		title := strings.TrimSpace(r.Title)
		if title == "" {
			title = r.URL
		}
		resources = append(resources, entity.Resource{
			Title:      title,
			URL:        r.URL,
			Content:    strings.TrimSpace(r.Content),
			Score:      r.Score,
			RawContent: r.RawContent,
		})
		if max > 0 && len(resources) == max {
			break
		}
	}
	return resources
}

func (m *LearningMapper) ToModules(reqs []dto.EnrichModuleRequest) []entity.Module {
	modules := make([]entity.Module, 0, len(reqs))
	for _, r := range reqs {
		modules = append(modules, entity.Module{
			Order:       r.Order,
			Title:       strings.TrimSpace(r.Title),
			Description: strings.TrimSpace(r.Description),
			Difficulty:  entity.ParseDifficulty(r.Difficulty),
		})
	}
	return modules
}

func (m *LearningMapper) ToResource(r dto.AnalysisResourceRequest) entity.Resource {
	return entity.Resource{
		Title:      strings.TrimSpace(r.Title),
		URL:        strings.TrimSpace(r.URL),
		Content:    r.Content,
		RawContent: r.RawContent,
	}
}

func (m *LearningMapper) ToModelResponses(models []llm.ModelInfo) []dto.ModelResponse {
	out := make([]dto.ModelResponse, 0, len(models))
	for _, mi := range models {
		out = append(out, dto.ModelResponse{ID: mi.ID, Family: string(mi.Family), Available: mi.Available})
	}
	return out
}
