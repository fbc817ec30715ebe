package scrape

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ScrapName builds the corpus file name for a page fetched at the
// given time. Host dots become underscores so the name stays a single
// shell-safe token; the trailing digit is tenths of a second, enough to
// keep two fetches of the same host in one second apart.
func ScrapName(pageURL string, now time.Time) string {
	host := "unknown_host"
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		host = u.Host
	}
	host = strings.TrimPrefix(host, "www.")
	host = strings.ReplaceAll(host, ".", "_")
	utc := now.UTC()
	return fmt.Sprintf("Scrap_%s_%s_%d.txt", host, utc.Format("20060102_150405"), utc.Nanosecond()/100000000)
}

// WriteScrap stores one page as a scrap file: a three-line provenance
// header, a separator, then the page text capped at maxChars runes.
// Returns the full path of the file written.
func WriteScrap(dir, pageURL, model, text string, maxChars int, now time.Time) (string, error) {
	if maxChars > 0 {
		if runes := []rune(text); len(runes) > maxChars {
			text = string(runes[:maxChars])
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "URL: %s\n", pageURL)
	fmt.Fprintf(&b, "Model: %s\n", model)
	fmt.Fprintf(&b, "Scraped at: %s\n", now.UTC().Format("2006-01-02T15:04:05.000000"))
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n")
	b.WriteString(text)

	path := filepath.Join(dir, ScrapName(pageURL, now))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write scrap file: %w", err)
	}
	return path, nil
}
