package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextWindow(t *testing.T) {
	// Word starts: alpha=0 beta=6 gamma=11 delta=17 epsilon=23.
	text := "alpha beta gamma delta epsilon"

	tests := []struct {
		name   string
		offset int
		radius int
		want   string
	}{
		{"offset zero", 0, 2, "alpha beta"},
		{"middle word", 11, 1, "beta gamma"},
		{"radius clamps at both ends", 11, 10, text},
		{"last word", 23, 1, "delta epsilon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContextWindow(text, tt.offset, tt.radius))
		})
	}
}

func TestContextWindowMidWordOffsetSnapsForward(t *testing.T) {
	// An offset inside "beta" resolves to the first word boundary at or
	// after it, so the window centers on "gamma". The drift is accepted;
	// the window is for review, not exact excerpting.
	got := ContextWindow("alpha beta gamma delta epsilon", 8, 1)
	assert.Equal(t, "beta gamma", got)
}

func TestContextWindowFallback(t *testing.T) {
	long := strings.Repeat("word ", 200) // 1000 chars

	got := ContextWindow(long, len(long)+50, 5)
	assert.Equal(t, long[:500], got)

	short := "just a few words"
	assert.Equal(t, short, ContextWindow(short, 1000, 5))
}

func TestContextWindowEmptyText(t *testing.T) {
	assert.Equal(t, "", ContextWindow("", 0, 100))
}
