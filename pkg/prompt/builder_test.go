package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Index(t *testing.T) {
	out, err := Build(OpIndex, Input{Text: "Goroutines are cheap. 100% of the time?"})
	require.NoError(t, err)
	assert.Contains(t, out, "Goroutines are cheap. 100% of the time?")
	assert.NotContains(t, out, "{{TEXT}}")
	assert.Contains(t, out, `"main_topic"`)
}

func TestBuild_Enrich(t *testing.T) {
	out, err := Build(OpEnrich, Input{MainTopic: "Go", Title: "Channels"})
	require.NoError(t, err)
	assert.Contains(t, out, "Main topic: Go")
	assert.Contains(t, out, "Module: Channels")
	assert.Contains(t, out, "Module description: -")
}

func TestBuild_AnalysisTruncatesContent(t *testing.T) {
	content := strings.Repeat("é", MaxAnalysisContentChars+50)
	out, err := Build(OpAnalysis, Input{Title: "Doc", URL: "https://example.com", Text: content})
	require.NoError(t, err)
	assert.Contains(t, out, "URL: https://example.com")
	assert.NotContains(t, out, content)
	assert.Contains(t, out, strings.Repeat("é", MaxAnalysisContentChars))
}

func TestBuild_UnknownOp(t *testing.T) {
	_, err := Build(Op("summarize"), Input{})
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, 3, utf8.RuneCountInString(Truncate("ñññññ", 3)))
	assert.Equal(t, "abc", Truncate("abc", 0))
}
