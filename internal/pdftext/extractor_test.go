package pdftext

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestClampRange(t *testing.T) {
	tests := []struct {
		name               string
		start, end, total  int
		wantStart, wantEnd int
	}{
		{"in range", 2, 5, 10, 2, 5},
		{"start below", 0, 1000, 10, 1, 10},
		{"end beyond", 1, 1000, 10, 1, 10},
		{"swap after clamp", 5, 2, 10, 2, 5},
		{"both beyond", 50, 80, 10, 10, 10},
		{"single page doc", 3, 7, 1, 1, 1},
		{"negative start", -4, 3, 10, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ClampRange(tt.start, tt.end, tt.total)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "abcdef", Truncate("abcdef", 0), "zero budget disables truncation")
	assert.Equal(t, "", Truncate("", 5))

	long := strings.Repeat("x", 70000)
	assert.Len(t, Truncate(long, 60000), 60000)
}

func TestTruncate_NeverSplitsARune(t *testing.T) {
	s := strings.Repeat("x", 59999) + "é"
	got := Truncate(s, 60000)
	assert.True(t, utf8.ValidString(got))
	assert.Len(t, got, 59999, "cut backs off to the previous rune boundary")

	multi := strings.Repeat("日", 10) // 3 bytes each
	for max := 1; max <= len(multi); max++ {
		got := Truncate(multi, max)
		assert.True(t, utf8.ValidString(got), "max=%d", max)
		assert.LessOrEqual(t, len(got), max)
	}
}

func TestExtractRange_UnreadableDocument(t *testing.T) {
	e := NewExtractor()

	result, err := e.ExtractRange([]byte("definitely not a pdf"), 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, 0, result.TotalPages)
	assert.Empty(t, result.Text)
}

func TestExtractRange_EmptyDocument(t *testing.T) {
	e := NewExtractor()

	result, err := e.ExtractRange(nil, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, 0, result.TotalPages)
}
