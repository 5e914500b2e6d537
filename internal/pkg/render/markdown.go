// Package render turns learning documents into Markdown for copy-to-clipboard
// export and terminal output.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cristiansanchez/indice/internal/entity"
)

// Markdown renders the index with its modules in order.
func Markdown(index *entity.LearningIndex) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# %s\n\n", index.MainTopic))
	if index.TopicSummary != "" {
		b.WriteString(index.TopicSummary)
		b.WriteString("\n\n")
	}

	modules := append([]entity.Module(nil), index.Modules...)
	sort.SliceStable(modules, func(i, j int) bool { return modules[i].Order < modules[j].Order })

	for _, m := range modules {
		b.WriteString(fmt.Sprintf("## %d. %s\n\n", m.Order, m.Title))
		if m.Difficulty != "" {
			b.WriteString(fmt.Sprintf("**Difficulty:** %s\n\n", m.Difficulty))
		}
		if m.Description != "" {
			b.WriteString(m.Description)
			b.WriteString("\n\n")
		}
		if len(m.Resources) > 0 {
			b.WriteString("**Resources:**\n\n")
			for _, r := range m.Resources {
				b.WriteString(fmt.Sprintf("- [%s](%s)", escapeLinkText(r.Title), r.URL))
				if snippet := oneLine(r.Content, 200); snippet != "" {
					b.WriteString(" - ")
					b.WriteString(snippet)
				}
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// AnalysisMarkdown renders the five sections of a technical analysis.
func AnalysisMarkdown(title string, a *entity.TechnicalAnalysis) string {
	var b strings.Builder

	if title != "" {
		b.WriteString(fmt.Sprintf("# %s\n\n", title))
	}
	b.WriteString("## Technical explanation\n\n")
	b.WriteString(a.TechnicalExplanation)
	b.WriteString("\n\n")

	if a.NarrativeExplanation != "" {
		b.WriteString("## Narrative explanation\n\n")
		b.WriteString(a.NarrativeExplanation)
		b.WriteString("\n\n")
	}
	if len(a.ImplementationSteps) > 0 {
		b.WriteString("## Implementation steps\n\n")
		for i, step := range a.ImplementationSteps {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
		}
		b.WriteString("\n")
	}
	if len(a.Quotes) > 0 {
		b.WriteString("## Quotes\n\n")
		for _, q := range a.Quotes {
			b.WriteString(fmt.Sprintf("> %s\n\n", oneLine(q, 0)))
		}
	}
	if a.BlindSpots != "" {
		b.WriteString("## Blind spots\n\n")
		b.WriteString(a.BlindSpots)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func escapeLinkText(s string) string {
	return strings.NewReplacer("[", "\\[", "]", "\\]").Replace(s)
}

// oneLine collapses whitespace and cuts to max runes (0 = no limit).
func oneLine(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if max > 0 && len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return s
}
