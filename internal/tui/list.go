package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/scrapworks/eolscout/internal/results"
)

// linesPerItem is the number of terminal lines each row occupies.
const linesPerItem = 2

// renderList renders the left panel: provenance rows with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.rows) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No rows")
		return empty
	}

	var lines []string
	for i, r := range m.rows {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatRow(r, width, i == m.cursor)...)
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatRow formats a single provenance row as two lines:
//
//	line 1: [>] batch  scrap file name
//	line 2:     source url (dimmed)
func formatRow(r results.Row, width int, selected bool) []string {
	batch := r.BatchNumber
	if batch == results.NotApplicable {
		batch = "-"
	} else {
		batch = "b" + batch
	}
	tag := styleBatchTag.Render(batch)

	name := strings.ReplaceAll(r.ScrapFileName, "\n", " ")
	nameMax := width - 2 - 3 - 1 // marker + batch tag + padding
	if nameMax < 0 {
		nameMax = 0
	}
	if runewidth.StringWidth(name) > nameMax {
		name = runewidth.Truncate(name, nameMax, "")
	}

	line1 := fmt.Sprintf("%s %s", tag, name)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	url := strings.ReplaceAll(r.SourceURL, "\n", " ")
	urlMax := width - 4 // indent
	if urlMax < 0 {
		urlMax = 0
	}
	if runewidth.StringWidth(url) > urlMax {
		url = runewidth.Truncate(url, urlMax, "")
	}
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(url)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
