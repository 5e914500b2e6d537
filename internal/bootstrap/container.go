package bootstrap

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/cristiansanchez/indice/internal/config"
	"github.com/cristiansanchez/indice/internal/controller"
	"github.com/cristiansanchez/indice/internal/mapper"
	"github.com/cristiansanchez/indice/internal/pkg/logger"
	"github.com/cristiansanchez/indice/internal/repository/contract"
	"github.com/cristiansanchez/indice/internal/repository/memory"
	redisrepo "github.com/cristiansanchez/indice/internal/repository/redis"
	"github.com/cristiansanchez/indice/internal/service"
	"github.com/cristiansanchez/indice/pkg/events"
	"github.com/cristiansanchez/indice/pkg/llm/factory"
	pktNats "github.com/cristiansanchez/indice/pkg/nats"
	"github.com/cristiansanchez/indice/pkg/search"
	"github.com/cristiansanchez/indice/pkg/search/grounded"
	"github.com/cristiansanchez/indice/pkg/search/tavily"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// LLM is the model dispatcher seen by services and the models endpoint.
type LLM interface {
	service.Generator
	controller.ModelCatalog
}

type Container struct {
	Config *config.Config
	Logger logger.ILogger

	// Controllers
	IndexController    controller.IIndexController
	AnalysisController controller.IAnalysisController
	AuthController     controller.IAuthController
	ModelController    controller.IModelController

	// Services (also used by the CLI)
	IndexService      service.IIndexService
	EnrichmentService service.IEnrichmentService
	AnalysisService   service.IAnalysisService
	AuthService       service.IAuthService
	Models            controller.ModelCatalog

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	closers []func() error
}

// Dependencies are the infrastructure pieces Assemble wires together.
type Dependencies struct {
	Config   *config.Config
	Logger   logger.ILogger
	LLM      LLM
	Search   search.Provider
	Sessions contract.SessionRepository
	PubSub   *gochannel.GoChannel
	Sinks    []events.Sink
}

// NewContainer builds the production dependencies from cfg. Optional
// infrastructure (NATS, Redis) degrades with a warning when unreachable.
func NewContainer(cfg *config.Config, sysLogger logger.ILogger) *Container {
	var closers []func() error

	// 1. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogger,
	)
	closers = append(closers, pubSub.Close)

	var sinks []events.Sink
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			sinks = append(sinks, natsPub)
			closers = append(closers, func() error { natsPub.Close(); return nil })
		}
	}

	// 2. LLM
	dispatcher := factory.NewDispatcher(factory.Config{
		DefaultModel:     cfg.Ai.DefaultModel,
		GeminiAPIKey:     cfg.Keys.GoogleGemini,
		GeminiBaseURL:    cfg.Ai.GeminiBaseURL,
		AnthropicAPIKey:  cfg.Keys.Anthropic,
		AnthropicBaseURL: cfg.Ai.AnthropicBaseURL,
		OpenAIAPIKey:     cfg.Keys.OpenAI,
		OpenAIBaseURL:    cfg.Ai.OpenAIBaseURL,
		OllamaBaseURL:    cfg.Ai.OllamaBaseURL,
	})
	log.Printf("[INFO] Default LLM model: %s", cfg.Ai.DefaultModel)

	// 3. Search
	provider := NewSearchProvider(cfg, dispatcher)
	log.Printf("[INFO] Using search provider: %s", provider.Name())

	// 4. Sessions
	var sessions contract.SessionRepository = memory.NewSessionRepository(cfg.Session.TTL)
	if cfg.Session.Store == "redis" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := redisrepo.NewClient(ctx, cfg.Session.RedisURL)
		cancel()
		if err != nil {
			log.Printf("[WARN] %v. Falling back to in-memory sessions", err)
		} else {
			sessions = redisrepo.NewSessionRepository(rdb, cfg.Session.TTL)
			closers = append(closers, rdb.Close)
		}
	}

	c := Assemble(Dependencies{
		Config:   cfg,
		Logger:   sysLogger,
		LLM:      dispatcher,
		Search:   provider,
		Sessions: sessions,
		PubSub:   pubSub,
		Sinks:    sinks,
	})
	c.closers = append(c.closers, closers...)
	return c
}

// NewSearchProvider selects the search backend named by SEARCH_PROVIDER and
// puts the result cache in front of it.
func NewSearchProvider(cfg *config.Config, dispatcher *factory.Dispatcher) search.Provider {
	var provider search.Provider
	switch cfg.Search.Provider {
	case "gemini":
		provider = grounded.NewGroundedProvider(func(ctx context.Context) (grounded.Generator, error) {
			g, err := dispatcher.Gemini(ctx)
			if err != nil {
				return nil, err
			}
			return g, nil
		}, cfg.Search.GroundingModel)
	default:
		if cfg.Search.Provider != "tavily" {
			log.Printf("[WARN] Unknown SEARCH_PROVIDER %q, using tavily", cfg.Search.Provider)
		}
		provider = tavily.NewTavilyProvider(cfg.Keys.Tavily, cfg.Search.TavilyBaseURL, &http.Client{Timeout: 30 * time.Second})
	}

	if cfg.Search.CacheTTL > 0 {
		provider = search.NewCachedProvider(provider, cfg.Search.CacheTTL)
	}
	return provider
}

// Assemble wires services and controllers on top of d.
func Assemble(d Dependencies) *Container {
	cfg := d.Config
	sysLogger := d.Logger

	var publisher events.Publisher = events.Nop{}
	if d.PubSub != nil || len(d.Sinks) > 0 {
		var bus message.Publisher
		if d.PubSub != nil {
			bus = d.PubSub
		}
		publisher = events.NewBusPublisher(bus, func(e events.Event, err error) {
			sysLogger.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
				"type":  e.EventType(),
				"error": err.Error(),
			})
		}, d.Sinks...)
	}

	learningMapper := mapper.NewLearningMapper()

	// Services
	indexService := service.NewIndexService(d.LLM, publisher, sysLogger, cfg.Ai.Timeout)
	enrichmentService := service.NewEnrichmentService(d.Search, learningMapper, publisher, sysLogger, service.EnrichmentConfig{
		MaxResults:     cfg.Search.MaxResults,
		MaxQueryLength: cfg.Search.MaxQueryLength,
	})
	analysisService := service.NewAnalysisService(d.LLM, learningMapper, publisher, sysLogger, cfg.Ai.Timeout)
	authService := service.NewAuthService(d.Sessions, publisher, sysLogger, service.AuthConfig{
		Password: cfg.Auth.Password,
		Secret:   cfg.Auth.SessionSecret,
		TTL:      cfg.Session.TTL,
	})

	var consumerService service.IConsumerService
	if d.PubSub != nil {
		consumerService = service.NewConsumerService(d.PubSub, events.Topic, sysLogger)
	}

	return &Container{
		Config: cfg,
		Logger: sysLogger,

		IndexController:    controller.NewIndexController(indexService, enrichmentService),
		AnalysisController: controller.NewAnalysisController(analysisService),
		AuthController: controller.NewAuthController(authService, controller.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure,
		}),
		ModelController: controller.NewModelController(d.LLM, learningMapper),

		IndexService:      indexService,
		EnrichmentService: enrichmentService,
		AnalysisService:   analysisService,
		AuthService:       authService,
		Models:            d.LLM,

		ConsumerService: consumerService,
	}
}

// Close releases the event bus and external connections.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
