package extract

import (
	"bufio"
	"os"
	"regexp"
)

// provenanceLines caps how deep into a scrap file the URL scan looks. The
// scraper writes its header in the first few lines.
const provenanceLines = 10

var urlPattern = regexp.MustCompile(`https?://[^\s<>"']+`)

// SourceURL scans the first lines of a scrap file for an embedded URL,
// bare or behind a "URL:"/"Source:" label. It returns "" when none is
// found or the file cannot be read; provenance failure never fails a run.
func SourceURL(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for i := 0; i < provenanceLines && sc.Scan(); i++ {
		if u := urlPattern.FindString(sc.Text()); u != "" {
			return u
		}
	}
	return ""
}
