package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRaw(t *testing.T) {
	short := "{\"main_topic\": \"Go\"}"
	assert.Equal(t, short, truncateRaw(short))

	// 1999 ASCII bytes then multi-byte runes straddling the cut
	raw := strings.Repeat("x", 1999) + strings.Repeat("ñ", 10)
	got := truncateRaw(raw)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "ñ...(truncated)"))
	assert.Equal(t, 2000, utf8.RuneCountInString(strings.TrimSuffix(got, "...(truncated)")))

	exact := strings.Repeat("é", 2000)
	assert.Equal(t, exact, truncateRaw(exact))
}
