package service

import (
	"context"
	"time"

	"github.com/cristiansanchez/indice/pkg/llm"
	"github.com/cristiansanchez/indice/pkg/prompt"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/cristiansanchez/indice/internal/service")

// Generator dispatches a prompt to the vendor serving model. Implemented by
// factory.Dispatcher.
type Generator interface {
	Generate(ctx context.Context, prompt, model string, options ...llm.Option) (string, error)
	DefaultModel() string
}

func resolveModel(gen Generator, model string) string {
	if model == "" {
		return gen.DefaultModel()
	}
	return model
}

// withTimeout bounds one LLM call. Zero leaves the context untouched.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// truncateRaw keeps logged vendor output readable.
func truncateRaw(raw string) string {
	const max = 2000
	cut := prompt.Truncate(raw, max)
	if cut == raw {
		return raw
	}
	return cut + "...(truncated)"
}
