package scrape

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScrapName(t *testing.T) {
	at := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	require.Equal(t, "Scrap_docs_vendor_com_20250110_090000_0.txt",
		ScrapName("https://docs.vendor.com/eol?q=x", at))
	require.Equal(t, "Scrap_ibm_com_20250110_090000_0.txt",
		ScrapName("https://www.ibm.com/support/pages", at))

	tenth := time.Date(2025, 1, 10, 9, 0, 0, 700_000_000, time.UTC)
	require.Equal(t, "Scrap_ibm_com_20250110_090000_7.txt",
		ScrapName("https://ibm.com/", tenth))

	require.Equal(t, "Scrap_unknown_host_20250110_090000_0.txt",
		ScrapName("not a url at all", at))
}

func TestWriteScrap(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	path, err := WriteScrap(dir, "https://docs.vendor.com/eol", "IBM x3650 M4",
		"Support ends 15/01/2026 for this model.", 5000, at)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "Scrap_docs_vendor_com_20250110_090000_0.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "URL: https://docs.vendor.com/eol\n" +
		"Model: IBM x3650 M4\n" +
		"Scraped at: 2025-01-10T09:00:00.000000\n" +
		strings.Repeat("=", 50) + "\n" +
		"Support ends 15/01/2026 for this model."
	require.Equal(t, want, string(data))
}

func TestWriteScrapCapsRunes(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	path, err := WriteScrap(dir, "https://ibm.com/", "m", "支持将于2026年结束等等等", 6, at)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(data), "=\n支持将于20"))
}
