package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// ParseDifficulty maps a free-form label to one of the three levels.
// Unknown labels fall back to Intermediate.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner", "basic", "principiante", "básico", "basico":
		return DifficultyBeginner
	case "advanced", "expert", "avanzado":
		return DifficultyAdvanced
	default:
		return DifficultyIntermediate
	}
}

type LearningIndex struct {
	MainTopic    string   `json:"main_topic"`
	TopicSummary string   `json:"topic_summary"`
	Modules      []Module `json:"modules"`
}

type Module struct {
	Order       int        `json:"order"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
	Resources   []Resource `json:"resources,omitempty"`
}

type Resource struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Content    string  `json:"content"`
	Score      float64 `json:"score"`
	RawContent string  `json:"raw_content,omitempty"`
}

// EnrichedModule is a module after the search pass. Resources is never nil so
// it always serializes as a list.
type EnrichedModule struct {
	Module
	Resources []Resource `json:"resources"`
}

type TechnicalAnalysis struct {
	TechnicalExplanation string   `json:"technical_explanation"`
	NarrativeExplanation string   `json:"narrative_explanation"`
	ImplementationSteps  []string `json:"implementation_steps"`
	Quotes               []string `json:"quotes"`
	BlindSpots           string   `json:"blind_spots"`
}

var (
	ErrMissingMainTopic   = errors.New("main_topic is required")
	ErrNoModules          = errors.New("at least one module is required")
	ErrDuplicateOrder     = errors.New("module order values must be unique")
	ErrMissingTitle       = errors.New("module title is required")
	ErrMissingExplanation = errors.New("technical_explanation is required")
)

// Normalize validates the index and puts it in canonical form: trimmed text,
// canonical difficulty and modules sorted by order.
func (idx *LearningIndex) Normalize() error {
	idx.MainTopic = strings.TrimSpace(idx.MainTopic)
	idx.TopicSummary = strings.TrimSpace(idx.TopicSummary)
	if idx.MainTopic == "" {
		return ErrMissingMainTopic
	}
	if len(idx.Modules) == 0 {
		return ErrNoModules
	}

	for i := range idx.Modules {
		m := &idx.Modules[i]
		m.Title = strings.TrimSpace(m.Title)
		m.Description = strings.TrimSpace(m.Description)
		if m.Title == "" {
			return fmt.Errorf("%w (module at position %d)", ErrMissingTitle, i)
		}
		m.Difficulty = ParseDifficulty(string(m.Difficulty))
	}
	if err := CheckUniqueOrders(idx.Modules); err != nil {
		return err
	}

	sort.SliceStable(idx.Modules, func(i, j int) bool {
		return idx.Modules[i].Order < idx.Modules[j].Order
	})
	return nil
}

// CheckUniqueOrders rejects module lists in which two modules share an order.
func CheckUniqueOrders(modules []Module) error {
	seen := make(map[int]struct{}, len(modules))
	for _, m := range modules {
		if _, dup := seen[m.Order]; dup {
			return fmt.Errorf("%w (order %d)", ErrDuplicateOrder, m.Order)
		}
		seen[m.Order] = struct{}{}
	}
	return nil
}

// MergeEnrichment attaches the resources of each enriched module to the module
// with the same order. Modules without a match keep their resources.
func (idx *LearningIndex) MergeEnrichment(enriched []EnrichedModule) {
	byOrder := make(map[int][]Resource, len(enriched))
	for _, em := range enriched {
		byOrder[em.Order] = em.Resources
	}
	for i := range idx.Modules {
		if resources, ok := byOrder[idx.Modules[i].Order]; ok {
			idx.Modules[i].Resources = append([]Resource(nil), resources...)
		}
	}
}

func (a *TechnicalAnalysis) Normalize() error {
	a.TechnicalExplanation = strings.TrimSpace(a.TechnicalExplanation)
	a.NarrativeExplanation = strings.TrimSpace(a.NarrativeExplanation)
	a.BlindSpots = strings.TrimSpace(a.BlindSpots)
	if a.TechnicalExplanation == "" {
		return ErrMissingExplanation
	}
	if a.ImplementationSteps == nil {
		a.ImplementationSteps = []string{}
	}
	if a.Quotes == nil {
		a.Quotes = []string{}
	}
	return nil
}
