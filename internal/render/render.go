package render

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/scrapworks/eolscout/internal/extract"
)

const (
	colorReset   = "\033[0m"
	colorSection = "\033[1;34m" // bold blue for === headers
	colorLabel   = "\033[1;32m" // bold green for field labels
	colorDim     = "\033[2m"
	colorDate    = "\033[1;31m" // bold red for date spans
	colorHit     = "\033[43m"   // yellow background for filter terms
)

// maxPreviewBytes bounds how much of a file the preview renders.
const maxPreviewBytes = 1 << 20

type Options struct {
	Width int    // wrap width (0 = no wrap)
	Query string // filter terms to highlight
}

var datePatterns = compileDatePatterns()

func compileDatePatterns() []*regexp.Regexp {
	ps := extract.DefaultPatterns()
	res := make([]*regexp.Regexp, 0, len(ps))
	for _, p := range ps {
		res = append(res, regexp.MustCompile(`(?i)`+p.Regex))
	}
	return res
}

// fieldLabels are line prefixes that get label coloring. "Date Found:"
// sorts before "Date:" so the longer prefix wins.
var fieldLabels = []string{"Date Found:", "Scraped at:", "Context:", "Model:", "Date:", "URL:"}

// highlightDates wraps every date-like span in the line in bold red.
// Overlapping hits from different patterns merge into one span.
func highlightDates(line string) (string, bool) {
	var spans [][2]int
	for _, re := range datePatterns {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			spans = append(spans, [2]int{loc[0], loc[1]})
		}
	}
	if len(spans) == 0 {
		return line, false
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })
	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s[0] <= last[1] {
			if s[1] > last[1] {
				last[1] = s[1]
			}
			continue
		}
		merged = append(merged, s)
	}

	// Insert right to left so earlier offsets stay valid.
	for i := len(merged) - 1; i >= 0; i-- {
		s, e := merged[i][0], merged[i][1]
		line = line[:s] + colorDate + line[s:e] + colorReset + line[e:]
	}
	return line, true
}

// highlightKeywords wraps case-insensitive matches of query terms in a
// yellow background.
func highlightKeywords(text, query string) string {
	terms := strings.Fields(query)
	for _, term := range terms {
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			idx := strings.Index(strings.ToLower(text[i:]), lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			orig := text[pos : pos+len(term)]
			replacement := colorHit + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

func isSeparatorLine(line string) bool {
	if len(line) < 4 {
		return false
	}
	return strings.Count(line, "=") == len(line)
}

func isSectionLine(line string) bool {
	return strings.HasPrefix(line, "=== ") && strings.HasSuffix(line, " ===")
}

// colorLine styles one raw line: section headers blue, separator rows
// dimmed, known field labels green, and date spans red everywhere the
// text is body content. Reports whether the line carries a date.
func colorLine(line, query string) (string, bool) {
	switch {
	case isSectionLine(line):
		return colorSection + line + colorReset, false
	case isSeparatorLine(line):
		return colorDim + line + colorReset, false
	}

	for _, label := range fieldLabels {
		if strings.HasPrefix(line, label) {
			rest, hit := highlightDates(line[len(label):])
			rest = highlightKeywords(rest, query)
			return colorLabel + label + colorReset + rest, hit
		}
	}

	out, hit := highlightDates(line)
	out = highlightKeywords(out, query)
	return out, hit
}

// RenderFile reads a prompt or scrap file and returns its highlighted
// content plus the 0-based display line of the first date hit (-1 when
// the file has none).
func RenderFile(path string, opts Options) (string, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", -1, fmt.Errorf("read preview file: %w", err)
	}

	truncated := false
	if len(data) > maxPreviewBytes {
		data = data[:maxPreviewBytes]
		truncated = true
	}
	text := strings.ToValidUTF8(string(data), "")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var b strings.Builder
	hitLine := -1
	lineCount := 0

	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	for _, line := range strings.Split(text, "\n") {
		out, hit := colorLine(line, opts.Query)
		if hit && hitLine < 0 {
			hitLine = lineCount
		}
		writeLine(out)
	}

	if truncated {
		writeLine(colorDim + "... (truncated)" + colorReset)
	}

	return b.String(), hitLine, nil
}
