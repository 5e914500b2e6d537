package dto

import "github.com/cristiansanchez/indice/internal/entity"

type GenerateIndexRequest struct {
	Text  string `json:"text" validate:"required"`
	Model string `json:"model"`
}

type GenerateIndexResponse struct {
	Model string               `json:"model"`
	Index entity.LearningIndex `json:"index"`
}

type EnrichModuleRequest struct {
	Order       int    `json:"order"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
}

type EnrichRequest struct {
	MainTopic string                `json:"main_topic"`
	Modules   []EnrichModuleRequest `json:"modules" validate:"required,min=1,dive"`
}

type EnrichResponse struct {
	Provider string                  `json:"provider"`
	Modules  []entity.EnrichedModule `json:"modules"`
	// Failed lists the orders of modules whose search call failed.
	Failed []int `json:"failed"`
}

type AnalysisResourceRequest struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Content    string `json:"content"`
	RawContent string `json:"raw_content"`
}

type AnalysisRequest struct {
	Resource AnalysisResourceRequest `json:"resource"`
	Model    string                  `json:"model"`
}

type AnalysisResponse struct {
	Model    string                   `json:"model"`
	Analysis entity.TechnicalAnalysis `json:"analysis"`
}

type ModelResponse struct {
	ID        string `json:"id"`
	Family    string `json:"family"`
	Available bool   `json:"available"`
}

type ModelsResponse struct {
	Default string          `json:"default"`
	Models  []ModelResponse `json:"models"`
}
