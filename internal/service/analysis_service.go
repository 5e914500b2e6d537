package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cristiansanchez/indice/internal/dto"
	"github.com/cristiansanchez/indice/internal/entity"
	"github.com/cristiansanchez/indice/internal/mapper"
	"github.com/cristiansanchez/indice/internal/pkg/logger"
	"github.com/cristiansanchez/indice/pkg/events"
	"github.com/cristiansanchez/indice/pkg/llm"
	"github.com/cristiansanchez/indice/pkg/prompt"
	"go.opentelemetry.io/otel/attribute"
)

type IAnalysisService interface {
	AnalyzeResource(ctx context.Context, req *dto.AnalysisRequest) (*dto.AnalysisResponse, error)
}

type analysisService struct {
	generator Generator
	mapper    *mapper.LearningMapper
	publisher events.Publisher
	logger    logger.ILogger
	timeout   time.Duration
}

func NewAnalysisService(generator Generator, mapper *mapper.LearningMapper, publisher events.Publisher, logger logger.ILogger, timeout time.Duration) IAnalysisService {
	return &analysisService{
		generator: generator,
		mapper:    mapper,
		publisher: publisher,
		logger:    logger,
		timeout:   timeout,
	}
}

func (s *analysisService) AnalyzeResource(ctx context.Context, req *dto.AnalysisRequest) (*dto.AnalysisResponse, error) {
	resource := s.mapper.ToResource(req.Resource)
	content := resource.RawContent
	if strings.TrimSpace(content) == "" {
		content = resource.Content
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyResource
	}
	model := resolveModel(s.generator, req.Model)

	ctx, span := tracer.Start(ctx, "AnalysisService.AnalyzeResource")
	defer span.End()
	span.SetAttributes(attribute.String("llm.model", model), attribute.String("resource.url", resource.URL))

	composed, err := prompt.Build(prompt.OpAnalysis, prompt.Input{
		Title: resource.Title,
		URL:   resource.URL,
		Text:  content,
	})
	if err != nil {
		return nil, err
	}

	callCtx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generator.Generate(callCtx, composed, model)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("ANALYSIS", "LLM call failed", map[string]interface{}{
			"model": model,
			"url":   resource.URL,
			"error": err.Error(),
		})
		return nil, err
	}

	analysis, err := llm.ExtractJSON(raw, func(a *entity.TechnicalAnalysis) error {
		return a.Normalize()
	})
	if err != nil {
		span.RecordError(err)
		details := map[string]interface{}{"model": model, "url": resource.URL, "error": err.Error()}
		var parseErr *llm.ParseError
		if errors.As(err, &parseErr) {
			details["raw_response"] = truncateRaw(parseErr.Raw)
		}
		s.logger.Error("ANALYSIS", "Unusable LLM response", details)
		return nil, err
	}

	s.publisher.Publish(ctx, events.New(events.TypeAnalysisGenerated, map[string]interface{}{
		"model": model,
		"url":   resource.URL,
	}))

	return &dto.AnalysisResponse{Model: model, Analysis: analysis}, nil
}
