package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scrapworks/eolscout/internal/render"
)

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	path    string
	query   string
	content string
	hitLine int
	err     error
}

// loadPreviewCmd returns a tea.Cmd that renders the file preview async.
func loadPreviewCmd(path, query string, width int) tea.Cmd {
	return func() tea.Msg {
		content, hitLine, err := render.RenderFile(path, render.Options{
			Width: width,
			Query: query,
		})
		return previewRenderedMsg{
			path:    path,
			query:   query,
			content: content,
			hitLine: hitLine,
			err:     err,
		}
	}
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	return viewport.New(width, height)
}
