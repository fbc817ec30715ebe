package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScrap(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSourceURL(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			"labeled url",
			"URL: https://vendor.example/eol\nModel: X100\n\nbody",
			"https://vendor.example/eol",
		},
		{
			"source label",
			"Source: https://support.example/notice?id=7\nbody",
			"https://support.example/notice?id=7",
		},
		{
			"bare url on later line",
			"scraped page\nsee https://example.com/lifecycle for details\n",
			"https://example.com/lifecycle",
		},
		{
			"quoted url stops at quote",
			"link \"https://x.example/page\" here",
			"https://x.example/page",
		},
		{
			"first url wins",
			"URL: https://first.example/\nURL: https://second.example/\n",
			"https://first.example/",
		},
		{
			"no url",
			"Model: X100\nplain text only\n",
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScrap(t, "Scrap_test.txt", tt.content)
			assert.Equal(t, tt.want, SourceURL(path))
		})
	}
}

func TestSourceURLOnlyScansHeader(t *testing.T) {
	content := strings.Repeat("filler line\n", 12) + "https://late.example/\n"
	path := writeScrap(t, "Scrap_late.txt", content)

	assert.Equal(t, "", SourceURL(path))
}

func TestSourceURLMissingFile(t *testing.T) {
	assert.Equal(t, "", SourceURL(filepath.Join(t.TempDir(), "absent.txt")))
}
