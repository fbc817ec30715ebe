package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var csvHeader = []string{
	"Scrap File Name",
	"Scrap File Location",
	"Source URL",
	"Prompt File Name",
	"Prompt File Path",
	"Batch Number",
}

// WriteCSV writes rows with the spreadsheet-facing header.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.ScrapFileName,
			r.ScrapFileLocation,
			r.SourceURL,
			r.PromptFileName,
			r.PromptFilePath,
			r.BatchNumber,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVName derives the export file name from the summary it came from.
func CSVName(jsonPath string) string {
	base := filepath.Base(jsonPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "_file_details.csv"
}

// ExportCSV writes the rows next to the summary file and returns the
// written path.
func ExportCSV(jsonPath string, rows []Row) (string, error) {
	out := filepath.Join(filepath.Dir(jsonPath), CSVName(jsonPath))
	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	if err := WriteCSV(f, rows); err != nil {
		f.Close()
		return "", fmt.Errorf("write csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	return out, nil
}
