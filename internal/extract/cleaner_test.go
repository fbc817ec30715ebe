package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "End of Life 2025", "End of Life 2025"},
		{"tags", "<div class=\"x\">Hello</div> <br/>world", "Hello world"},
		{"whitespace runs", "a \t\n  b\r\nc", "a b c"},
		{"junk characters", "price $100 @ 50%!", "price 100 50"},
		{"allow list survives", "v2.1; cost: 10,000 (USD) - a/b", "v2.1; cost: 10,000 (USD) - a/b"},
		{"unicode letters survive", "café open until 2025", "café open until 2025"},
		{"tag then junk", "<b>EOL*</b>notice", "EOL notice"},
		{"surrounding space", "  trimmed  ", "trimmed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text with 12/31/2025",
		"<html><body>Support ends Q3 2025 &amp; beyond</body></html>",
		"odd !!! spacing ### between $$$ words",
		"mixed <b>tags*</b> and roles; (v1.2) till 2026-01-01",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "input %q", in)
	}
}
