package factory

import "github.com/cristiansanchez/indice/pkg/llm"

var knownModels = []string{
	"gemini-2.5-flash",
	"gemini-2.5-pro",
	"gemini-2.0-flash",
	"claude-sonnet-4-5",
	"claude-opus-4-1",
	"claude-3-5-haiku-latest",
	"gpt-4o",
	"gpt-4o-mini",
	"gpt-4.1",
	"o4-mini",
}

// Catalog lists the known models, marking those whose vendor credential is
// configured. A configured Ollama base URL adds the default local model.
func (d *Dispatcher) Catalog() []llm.ModelInfo {
	ids := append([]string{}, knownModels...)
	if d.cfg.OllamaBaseURL != "" {
		ids = append(ids, llm.OllamaPrefix+"llama3")
	}

	out := make([]llm.ModelInfo, 0, len(ids))
	for _, id := range ids {
		family, _, err := llm.ResolveFamily(id)
		if err != nil {
			continue
		}
		out = append(out, llm.ModelInfo{
			ID:        id,
			Family:    family,
			Available: d.Credential(id) == nil,
		})
	}
	return out
}
