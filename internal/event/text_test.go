package event

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSplitText_Short verifies short text stays in one event.
func TestSplitText_Short(t *testing.T) {
	assert.Equal(t, []Text{{Text: "hola"}}, SplitText("hola"))
	assert.Empty(t, SplitText(""))
}

// TestSplitText_Long verifies chunks stay within the limit and rejoin to the input.
func TestSplitText_Long(t *testing.T) {
	in := strings.Repeat("é", TextMaxLength) // 2 bytes per rune
	parts := SplitText(in)
	require.Len(t, parts, 2)

	var joined strings.Builder
	for _, p := range parts {
		assert.LessOrEqual(t, len(p.Text), TextMaxLength)
		assert.True(t, utf8.ValidString(p.Text))
		joined.WriteString(p.Text)
	}
	assert.Equal(t, in, joined.String())
}

// TestSplitText_RuneBoundary verifies a multi-byte rune straddling the limit moves to the next chunk.
func TestSplitText_RuneBoundary(t *testing.T) {
	in := strings.Repeat("a", TextMaxLength-1) + "€"
	parts := SplitText(in)
	require.Len(t, parts, 2)
	assert.Equal(t, strings.Repeat("a", TextMaxLength-1), parts[0].Text)
	assert.Equal(t, "€", parts[1].Text)
}
