// Package prompt composes the fixed prompts sent to LLM providers.
package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Op selects the prompt template.
type Op string

const (
	OpIndex    Op = "index"
	OpEnrich   Op = "enrich"
	OpAnalysis Op = "analysis"
)

// MaxAnalysisContentChars caps the resource content embedded in an analysis prompt.
const MaxAnalysisContentChars = 30000

// Input holds the values substituted into a template. Fields a template does
// not reference are ignored.
type Input struct {
	Text        string
	MainTopic   string
	Title       string
	Description string
	URL         string
}

// Build substitutes in into the template selected by op.
func Build(op Op, in Input) (string, error) {
	switch op {
	case OpIndex:
		return strings.NewReplacer("{{TEXT}}", in.Text).Replace(IndexTemplate), nil
	case OpEnrich:
		return strings.NewReplacer(
			"{{TOPIC}}", orDash(in.MainTopic),
			"{{TITLE}}", in.Title,
			"{{DESCRIPTION}}", orDash(in.Description),
		).Replace(EnrichTemplate), nil
	case OpAnalysis:
		return strings.NewReplacer(
			"{{TITLE}}", orDash(in.Title),
			"{{URL}}", orDash(in.URL),
			"{{TEXT}}", Truncate(in.Text, MaxAnalysisContentChars),
		).Replace(AnalysisTemplate), nil
	default:
		return "", fmt.Errorf("unknown prompt operation %q", op)
	}
}

// Truncate cuts s to at most max runes.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
