package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	CorpusDir  string        `toml:"corpus_dir"`
	OutputRoot string        `toml:"output_root"`
	DBPath     string        `toml:"db_path"`
	Extract    ExtractConfig `toml:"extract"`
	Scrape     ScrapeConfig  `toml:"scrape"`
}

// ExtractConfig tunes the extraction pipeline. Zero values mean "mode
// default"; the pipeline resolves them per mode.
type ExtractConfig struct {
	Mode         string `toml:"mode"`
	Prefix       string `toml:"prefix"`
	MaxTokens    int    `toml:"max_tokens"`
	Margin       int    `toml:"margin"`
	ChunkTokens  int    `toml:"chunk_tokens"`
	SplitTokens  int    `toml:"split_tokens"`
	ContextWords int    `toml:"context_words"`
	Proximity    int    `toml:"proximity"`
}

type ScrapeConfig struct {
	Engine         string `toml:"engine"`
	DelaySeconds   int    `toml:"delay_seconds"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Retries        int    `toml:"retries"`
	MaxChars       int    `toml:"max_chars"`
	UserAgent      string `toml:"user_agent"`
}

// Path returns the config file location, whether or not it exists.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "eolscout", "config.toml"), nil
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		CorpusDir:  ".",
		OutputRoot: ".",
		DBPath:     filepath.Join(home, ".config", "eolscout", "eolscout.db"),
		Extract: ExtractConfig{
			Mode:         "full",
			Prefix:       "date_extraction_output",
			ContextWords: 100,
			Proximity:    10,
		},
		Scrape: ScrapeConfig{
			Engine:         "duckduckgo",
			DelaySeconds:   3,
			TimeoutSeconds: 15,
			Retries:        3,
			MaxChars:       5000,
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		},
	}

	cfgPath := filepath.Join(home, ".config", "eolscout", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.CorpusDir = expandHome(cfg.CorpusDir, home)
	cfg.OutputRoot = expandHome(cfg.OutputRoot, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
