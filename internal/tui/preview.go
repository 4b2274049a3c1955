package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zuo-Peng/chatstat/internal/index"
	"github.com/Zuo-Peng/chatstat/internal/render"
)

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	idx     int
	content string
	hitLine int
	err     error
}

// loadPreviewCmd returns a tea.Cmd that renders the conversation around idx async.
func loadPreviewCmd(db *index.DB, idx int, query string, width int) tea.Cmd {
	return func() tea.Msg {
		content, hitLine, err := render.RenderConversation(db, render.Options{
			HitIdx:  idx,
			Context: 15,
			Width:   width,
			Query:   query,
		})
		return previewRenderedMsg{
			idx:     idx,
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
