package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cristiansanchez/indice/internal/dto"
	"github.com/cristiansanchez/indice/internal/entity"
	"github.com/cristiansanchez/indice/internal/pkg/logger"
	"github.com/cristiansanchez/indice/pkg/events"
	"github.com/cristiansanchez/indice/pkg/llm"
	"github.com/cristiansanchez/indice/pkg/prompt"
	"go.opentelemetry.io/otel/attribute"
)

type IIndexService interface {
	GenerateIndex(ctx context.Context, req *dto.GenerateIndexRequest) (*dto.GenerateIndexResponse, error)
}

type indexService struct {
	generator Generator
	publisher events.Publisher
	logger    logger.ILogger
	timeout   time.Duration
}

func NewIndexService(generator Generator, publisher events.Publisher, logger logger.ILogger, timeout time.Duration) IIndexService {
	return &indexService{
		generator: generator,
		publisher: publisher,
		logger:    logger,
		timeout:   timeout,
	}
}

func (s *indexService) GenerateIndex(ctx context.Context, req *dto.GenerateIndexRequest) (*dto.GenerateIndexResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyText
	}
	model := resolveModel(s.generator, req.Model)

	ctx, span := tracer.Start(ctx, "IndexService.GenerateIndex")
	defer span.End()
	span.SetAttributes(attribute.String("llm.model", model), attribute.Int("input.length", len(text)))

	composed, err := prompt.Build(prompt.OpIndex, prompt.Input{Text: text})
	if err != nil {
		return nil, err
	}

	callCtx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.generator.Generate(callCtx, composed, model)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("INDEX", "LLM call failed", map[string]interface{}{
			"model": model,
			"error": err.Error(),
		})
		return nil, err
	}

	index, err := llm.ExtractJSON(raw, func(idx *entity.LearningIndex) error {
		return idx.Normalize()
	})
	if err != nil {
		span.RecordError(err)
		var parseErr *llm.ParseError
		details := map[string]interface{}{"model": model, "error": err.Error()}
		if errors.As(err, &parseErr) {
			details["raw_response"] = truncateRaw(parseErr.Raw)
		}
		s.logger.Error("INDEX", "Unusable LLM response", details)
		return nil, err
	}

	s.logger.Info("INDEX", "Learning index generated", map[string]interface{}{
		"model":       model,
		"main_topic":  index.MainTopic,
		"modules":     len(index.Modules),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	s.publisher.Publish(ctx, events.New(events.TypeIndexGenerated, map[string]interface{}{
		"model":      model,
		"main_topic": index.MainTopic,
		"modules":    len(index.Modules),
	}))

	return &dto.GenerateIndexResponse{Model: model, Index: index}, nil
}
