package service

import (
	"context"
	"errors"
	"strings"

	"github.com/cristiansanchez/indice/internal/dto"
	"github.com/cristiansanchez/indice/internal/entity"
	"github.com/cristiansanchez/indice/internal/mapper"
	"github.com/cristiansanchez/indice/internal/pkg/logger"
	"github.com/cristiansanchez/indice/pkg/events"
	"github.com/cristiansanchez/indice/pkg/llm"
	"github.com/cristiansanchez/indice/pkg/search"
	"go.opentelemetry.io/otel/attribute"
)

type IEnrichmentService interface {
	EnrichModules(ctx context.Context, req *dto.EnrichRequest) (*dto.EnrichResponse, error)
	// EnrichIndex enriches every module of index and merges the resources back in place.
	EnrichIndex(ctx context.Context, index *entity.LearningIndex) (*dto.EnrichResponse, error)
}

type EnrichmentConfig struct {
	MaxResults     int
	MaxQueryLength int
}

type enrichmentService struct {
	provider  search.Provider
	mapper    *mapper.LearningMapper
	publisher events.Publisher
	logger    logger.ILogger
	cfg       EnrichmentConfig
}

func NewEnrichmentService(
	provider search.Provider,
	mapper *mapper.LearningMapper,
	publisher events.Publisher,
	logger logger.ILogger,
	cfg EnrichmentConfig,
) IEnrichmentService {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	if cfg.MaxQueryLength <= 0 {
		cfg.MaxQueryLength = search.DefaultMaxQueryLength
	}
	return &enrichmentService{
		provider:  provider,
		mapper:    mapper,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
	}
}

func (s *enrichmentService) EnrichModules(ctx context.Context, req *dto.EnrichRequest) (*dto.EnrichResponse, error) {
	modules := s.mapper.ToModules(req.Modules)
	if err := entity.CheckUniqueOrders(modules); err != nil {
		return nil, err
	}
	return s.enrich(ctx, strings.TrimSpace(req.MainTopic), modules)
}

func (s *enrichmentService) EnrichIndex(ctx context.Context, index *entity.LearningIndex) (*dto.EnrichResponse, error) {
	res, err := s.enrich(ctx, index.MainTopic, index.Modules)
	if err != nil {
		return nil, err
	}
	index.MergeEnrichment(res.Modules)
	return res, nil
}

// enrich runs one search per module, strictly in order. A failing module gets
// an empty resource list; only configuration errors abort the batch.
func (s *enrichmentService) enrich(ctx context.Context, mainTopic string, modules []entity.Module) (*dto.EnrichResponse, error) {
	ctx, span := tracer.Start(ctx, "EnrichmentService.Enrich")
	defer span.End()
	span.SetAttributes(
		attribute.String("search.provider", s.provider.Name()),
		attribute.Int("modules", len(modules)),
	)

	res := &dto.EnrichResponse{
		Provider: s.provider.Name(),
		Modules:  make([]entity.EnrichedModule, len(modules)),
		Failed:   []int{},
	}
	for i, m := range modules {
		res.Modules[i] = entity.EnrichedModule{Module: m, Resources: []entity.Resource{}}
		res.Modules[i].Module.Resources = nil
	}

	for i, m := range modules {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("ENRICH", "Enrichment cancelled", map[string]interface{}{
				"completed": i,
				"total":     len(modules),
				"error":     err.Error(),
			})
			break
		}

		req := search.Request{
			Query:          BuildQuery(mainTopic, m.Title, s.cfg.MaxQueryLength),
			MaxResults:     s.cfg.MaxResults,
			MaxQueryLength: s.cfg.MaxQueryLength,
			MainTopic:      search.TruncateQuery(mainTopic, s.cfg.MaxQueryLength),
			Title:          search.TruncateQuery(m.Title, s.cfg.MaxQueryLength),
			Description:    search.TruncateQuery(m.Description, s.cfg.MaxQueryLength),
		}

		results, err := s.provider.Search(ctx, req)
		if err != nil {
			if isConfigurationError(err) {
				span.RecordError(err)
				return nil, err
			}
			s.logger.Warn("ENRICH", "Search failed for module", map[string]interface{}{
				"order": m.Order,
				"title": m.Title,
				"error": err.Error(),
			})
			res.Failed = append(res.Failed, m.Order)
			s.publisher.Publish(ctx, events.New(events.TypeModuleEnrichmentFailed, map[string]interface{}{
				"order": m.Order,
				"title": m.Title,
				"error": err.Error(),
			}))
			continue
		}

		res.Modules[i].Resources = s.mapper.ToResources(results, s.cfg.MaxResults)
	}

	s.logger.Info("ENRICH", "Modules enriched", map[string]interface{}{
		"provider": res.Provider,
		"modules":  len(modules),
		"failed":   len(res.Failed),
	})
	s.publisher.Publish(ctx, events.New(events.TypeModulesEnriched, map[string]interface{}{
		"provider":   res.Provider,
		"main_topic": mainTopic,
		"modules":    len(modules),
		"failed":     len(res.Failed),
	}))

	return res, nil
}

// BuildQuery composes the search query for a module: the main topic followed
// by the module title, truncated to max runes.
func BuildQuery(mainTopic, title string, max int) string {
	q := strings.TrimSpace(title)
	topic := strings.TrimSpace(mainTopic)
	if topic != "" && !hasWordPrefix(q, topic) {
		q = topic + " " + q
	}
	return search.TruncateQuery(q, max)
}

// hasWordPrefix reports whether s starts with the whole words of prefix, ignoring case.
func hasWordPrefix(s, prefix string) bool {
	s, prefix = strings.ToLower(s), strings.ToLower(prefix)
	return s == prefix || strings.HasPrefix(s, prefix+" ")
}

func isConfigurationError(err error) bool {
	return errors.Is(err, search.ErrMissingCredential) || errors.Is(err, llm.ErrMissingCredential)
}
