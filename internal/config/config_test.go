package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.CorpusDir)
	assert.Equal(t, ".", cfg.OutputRoot)
	assert.Equal(t, filepath.Join(home, ".config", "eolscout", "eolscout.db"), cfg.DBPath)
	assert.Equal(t, "full", cfg.Extract.Mode)
	assert.Equal(t, "date_extraction_output", cfg.Extract.Prefix)
	assert.Equal(t, 100, cfg.Extract.ContextWords)
	assert.Equal(t, 10, cfg.Extract.Proximity)
	assert.Zero(t, cfg.Extract.MaxTokens)
	assert.Equal(t, "duckduckgo", cfg.Scrape.Engine)
	assert.Equal(t, 3, cfg.Scrape.DelaySeconds)
	assert.Equal(t, 15, cfg.Scrape.TimeoutSeconds)
	assert.Equal(t, 3, cfg.Scrape.Retries)
	assert.Equal(t, 5000, cfg.Scrape.MaxChars)
	assert.Contains(t, cfg.Scrape.UserAgent, "Mozilla/5.0")
}

func TestLoadOverlay(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "eolscout")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	body := `corpus_dir = "~/pages"
output_root = "/srv/runs"

[extract]
mode = "simple"
max_tokens = 2500

[scrape]
delay_seconds = 7
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "pages"), cfg.CorpusDir)
	assert.Equal(t, "/srv/runs", cfg.OutputRoot)
	assert.Equal(t, "simple", cfg.Extract.Mode)
	assert.Equal(t, 2500, cfg.Extract.MaxTokens)
	assert.Equal(t, 7, cfg.Scrape.DelaySeconds)

	// keys the file does not mention keep their defaults
	assert.Equal(t, "date_extraction_output", cfg.Extract.Prefix)
	assert.Equal(t, "duckduckgo", cfg.Scrape.Engine)
	assert.Equal(t, 15, cfg.Scrape.TimeoutSeconds)
}

func TestLoadBadTOML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "eolscout")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("corpus_dir = [unclosed"), 0o644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "eolscout", "config.toml"), p)
}
