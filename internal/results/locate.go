package results

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/scrapworks/eolscout/internal/pipeline"
)

// LatestRunDir finds the most recently modified <prefix>_* run
// directory under root. Empty string means no run exists yet.
func LatestRunDir(root, prefix string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	var best string
	var bestMtime time.Time
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), prefix+"_") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if best == "" || info.ModTime().After(bestMtime) {
			best = e.Name()
			bestMtime = info.ModTime()
		}
	}
	if best == "" {
		return "", nil
	}
	return filepath.Join(root, best), nil
}

// LatestSummaryFile finds the newest comprehensive summary inside a run
// directory. Empty string means the run wrote none.
func LatestSummaryFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var best string
	var bestMtime time.Time
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, pipeline.ComprehensiveName+"_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if best == "" || info.ModTime().After(bestMtime) {
			best = name
			bestMtime = info.ModTime()
		}
	}
	if best == "" {
		return "", nil
	}
	return filepath.Join(dir, best), nil
}
