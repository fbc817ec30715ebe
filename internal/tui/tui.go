package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scrapworks/eolscout/internal/open"
	"github.com/scrapworks/eolscout/internal/results"
)

const debounceDelay = 200 * time.Millisecond

type paneFocus int

const (
	focusList paneFocus = iota
	focusPreview
)

// message types

type debounceTickMsg struct {
	query string
}

// model

type model struct {
	summaryPath string
	allRows     []results.Row
	rows        []results.Row
	focus       paneFocus
	query       string
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewKey  string // "path\x00query" to avoid duplicate renders
	width       int
	height      int
	ready       bool
	quitting    bool
	statusMsg   string
	openPath    string
}

func initialModel(summaryPath string, rows []results.Row) model {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	return model{
		summaryPath: summaryPath,
		allRows:     rows,
		rows:        rows,
		filterInput: ti,
		preview:     viewport.New(0, 0),
	}
}

// Run starts the TUI and blocks until it exits. If the user selects a
// row with Enter, the backing file is opened in $EDITOR afterwards.
func Run(summaryPath string, rows []results.Row) error {
	m := initialModel(summaryPath, rows)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(model)
	if fm.openPath != "" {
		return open.File(fm.openPath)
	}
	return nil
}

// previewPath picks the file a row displays: its prompt file, or the
// scrap file itself for rows that never made a batch.
func previewPath(r results.Row) string {
	if r.PromptFilePath != "" && r.PromptFilePath != results.NoPromptFiles {
		return r.PromptFilePath
	}
	return r.ScrapFileLocation
}

// filterRows keeps rows whose name, URL, prompt file or batch tag
// contain every query term, case-insensitively.
func filterRows(rows []results.Row, query string) []results.Row {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return rows
	}
	var out []results.Row
	for _, r := range rows {
		hay := strings.ToLower(strings.Join([]string{
			r.ScrapFileName, r.SourceURL, r.PromptFileName, r.BatchNumber,
		}, " "))
		keep := true
		for _, term := range terms {
			if !strings.Contains(hay, term) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}

// Init starts the cursor blink; the first preview loads once the
// window size arrives.
func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = newViewport(m.previewWidth(), m.panelHeight())
		// Force a re-render at the new wrap width
		m.previewKey = ""
		if len(m.rows) > 0 && m.cursor < len(m.rows) {
			cmds = append(cmds, m.loadCurrentPreview())
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		m.statusMsg = ""

		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Tab):
			if m.focus == focusList {
				m.focus = focusPreview
				m.filterInput.Blur()
			} else {
				m.focus = focusList
				cmds = append(cmds, m.filterInput.Focus())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Enter):
			if r, ok := m.currentRow(); ok {
				m.openPath = previewPath(r)
				m.quitting = true
				return m, tea.Quit
			}
		}

		if m.focus == focusPreview {
			switch {
			case key.Matches(msg, keys.Up):
				m.preview.LineUp(1)
			case key.Matches(msg, keys.Down):
				m.preview.LineDown(1)
			case key.Matches(msg, keys.Copy):
				m.copyCurrentPath()
			case key.Matches(msg, keys.Export):
				m.exportCSV()
			case key.Matches(msg, keys.PreviewUp):
				m.preview.LineUp(m.panelHeight() / 2)
			case key.Matches(msg, keys.PreviewDn):
				m.preview.LineDown(m.panelHeight() / 2)
			case key.Matches(msg, keys.PageUp):
				m.preview.LineUp(m.panelHeight())
			case key.Matches(msg, keys.PageDown):
				m.preview.LineDown(m.panelHeight())
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.preview.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.preview.LineDown(m.panelHeight())
			return m, nil
		}

		// Pass remaining keys to the filter input
		var tiCmd tea.Cmd
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		newQuery := m.filterInput.Value()
		if newQuery != m.query {
			m.query = newQuery
			cmds = append(cmds, m.scheduleDebouncedFilter(newQuery))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.ready || len(m.rows) == 0 {
			return m, nil
		}

		region, itemIdx := m.hitTest(msg.X, msg.Y)

		switch {
		case region == regionList && msg.Button == tea.MouseButtonWheelUp:
			if m.listOffset > 0 {
				m.listOffset--
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonWheelDown:
			pH := m.panelHeight()
			visibleItems := pH / linesPerItem
			maxOffset := len(m.rows) - visibleItems
			if maxOffset < 0 {
				maxOffset = 0
			}
			if m.listOffset < maxOffset {
				m.listOffset++
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if itemIdx >= 0 && itemIdx < len(m.rows) && m.cursor != itemIdx {
				m.cursor = itemIdx
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case region == regionPreview && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
			var vpCmd tea.Cmd
			m.preview, vpCmd = m.preview.Update(msg)
			if vpCmd != nil {
				cmds = append(cmds, vpCmd)
			}
			return m, tea.Batch(cmds...)
		}

		return m, nil

	case debounceTickMsg:
		// Only apply if the query hasn't changed since the tick was scheduled
		if msg.query == m.query {
			m.rows = filterRows(m.allRows, msg.query)
			m.cursor = 0
			m.listOffset = 0
			if len(m.rows) > 0 {
				cmds = append(cmds, m.loadCurrentPreview())
			} else {
				m.preview.SetContent("")
				m.previewKey = ""
			}
		}
		return m, tea.Batch(cmds...)

	case previewRenderedMsg:
		key := previewCacheKey(msg.path, msg.query)
		// Drop renders for rows the cursor has already left
		if r, ok := m.currentRow(); ok {
			if key != previewCacheKey(previewPath(r), m.query) {
				return m, nil
			}
		}
		if msg.err != nil {
			m.preview.SetContent("Preview error: " + msg.err.Error())
		} else {
			m.preview.SetContent(msg.content)
			if msg.hitLine > 0 {
				m.preview.SetYOffset(msg.hitLine)
			} else {
				m.preview.GotoTop()
			}
		}
		m.previewKey = key
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	inputRow := m.filterInput.View()

	listBorder := styleActiveBorder
	previewBorder := stylePanelBorder
	if m.focus == focusPreview {
		listBorder = stylePanelBorder
		previewBorder = styleActiveBorder
	}

	listContent := m.renderList(listW, panelH)
	listPanel := listBorder.
		Width(listW).
		Height(panelH).
		Render(listContent)

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := previewBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)

	status := m.statusBar()

	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, status)
}

// helper methods

func (m model) currentRow() (results.Row, bool) {
	if len(m.rows) == 0 || m.cursor >= len(m.rows) {
		return results.Row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *model) copyCurrentPath() {
	r, ok := m.currentRow()
	if !ok {
		return
	}
	path := previewPath(r)
	if err := clipboard.WriteAll(path); err != nil {
		m.statusMsg = "clipboard unavailable: " + path
		return
	}
	m.statusMsg = "Copied: " + path
}

func (m *model) exportCSV() {
	path, err := results.ExportCSV(m.summaryPath, m.allRows)
	if err != nil {
		m.statusMsg = "CSV export failed: " + err.Error()
		return
	}
	m.statusMsg = "CSV written: " + path
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	// 40% for list, minus border padding
	w := m.width*40/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	// 60% for preview, minus border padding
	w := m.width*60/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract input row (1) + status bar (1) + borders (4)
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hitTest maps terminal coordinates to a panel region and list item index.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	pH := m.panelHeight()
	contentYStart := 2 // input row (1) + top border (1)
	contentYEnd := contentYStart + pH - 1

	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}
	relY := y - contentYStart

	lw := m.listWidth()
	listBoxRight := lw + 1 // col 0=border, 1..lw=content, lw+1=border

	if x >= 1 && x <= lw {
		itemIndex := m.listOffset + (relY / linesPerItem)
		return regionList, itemIndex
	}

	if x > listBoxRight+1 {
		return regionPreview, -1
	}

	return regionNone, -1
}

func (m model) statusBar() string {
	if m.statusMsg != "" {
		return styleStatusBar.Render(m.statusMsg)
	}
	var parts []string
	parts = append(parts, fmt.Sprintf("%d rows", len(m.rows)))
	parts = append(parts, "tab pane")
	parts = append(parts, "enter open")
	parts = append(parts, "y copy path")
	parts = append(parts, "e export csv")
	parts = append(parts, "esc quit")
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

func (m model) scheduleDebouncedFilter(query string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{query: query}
	})
}

func (m model) loadCurrentPreview() tea.Cmd {
	r, ok := m.currentRow()
	if !ok {
		return nil
	}
	path := previewPath(r)
	key := previewCacheKey(path, m.query)
	if key == m.previewKey {
		return nil // already showing this preview
	}
	return loadPreviewCmd(path, m.query, m.previewWidth())
}

func previewCacheKey(path, query string) string {
	return path + "\x00" + query
}
