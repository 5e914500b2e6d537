package llm

import (
	"fmt"
	"strings"
)

// Family is an LLM vendor family selected by model-name prefix.
type Family string

const (
	FamilyGemini    Family = "gemini"
	FamilyAnthropic Family = "anthropic"
	FamilyOpenAI    Family = "openai"
	FamilyOllama    Family = "ollama"
)

// ModelInfo describes a selectable model.
type ModelInfo struct {
	ID        string `json:"id"`
	Family    Family `json:"family"`
	Available bool   `json:"available"`
}

// OllamaPrefix marks a model served by a local Ollama instance, e.g. "ollama/llama3".
const OllamaPrefix = "ollama/"

// prefix table, checked in order
var familyPrefixes = []struct {
	prefix string
	family Family
}{
	{OllamaPrefix, FamilyOllama},
	{"gemini-", FamilyGemini},
	{"claude-", FamilyAnthropic},
	{"gpt-", FamilyOpenAI},
	{"chatgpt-", FamilyOpenAI},
	{"o1", FamilyOpenAI},
	{"o3", FamilyOpenAI},
	{"o4", FamilyOpenAI},
}

// ResolveFamily maps a model identifier to its vendor family and the
// vendor-side model name.
func ResolveFamily(model string) (Family, string, error) {
	name := strings.TrimSpace(model)
	lower := strings.ToLower(name)
	for _, p := range familyPrefixes {
		if strings.HasPrefix(lower, p.prefix) {
			if p.family == FamilyOllama {
				name = name[len(OllamaPrefix):]
				if name == "" {
					break
				}
			}
			return p.family, name, nil
		}
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnsupportedModel, model)
}
