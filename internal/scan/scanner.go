package scan

import (
	"os"
	"path/filepath"
	"strings"
)

// FileInfo describes one discovered scrap file.
type FileInfo struct {
	Path  string
	Name  string
	Mtime int64
	Size  int64
}

// ScrapFiles lists Scrap_*.txt files directly under dir. os.ReadDir sorts
// by name, and the scraper names files Scrap_<host>_<timestamp>.txt, so
// discovery order is deterministic. A missing directory yields an empty
// list, not an error.
func ScrapFiles(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, "Scrap_") || !strings.HasSuffix(name, ".txt") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue // raced with a delete
		}
		files = append(files, FileInfo{
			Path:  filepath.Join(dir, name),
			Name:  name,
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		})
	}
	return files, nil
}
