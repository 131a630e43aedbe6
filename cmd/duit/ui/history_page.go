package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"duit/internal/home"
)

// HistoryPageModel renders the activity log in a scrollable viewport.
type HistoryPageModel struct {
	viewport viewport.Model
	entries  []home.Entry
	styles   Styles
	width    int
	height   int
}

// NewHistoryPageModel creates a new history page component.
func NewHistoryPageModel(styles Styles) HistoryPageModel {
	vp := viewport.New(80, 20)
	return HistoryPageModel{
		viewport: vp,
		styles:   styles,
	}
}

// SetSize updates the size of the viewport.
func (m *HistoryPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = max(h-4, 3) // Reserve space for header/footer
	m.UpdateContent(m.entries)
}

// UpdateContent replaces the rendered entries.
func (m *HistoryPageModel) UpdateContent(entries []home.Entry) {
	m.entries = entries
	if len(entries) == 0 {
		m.viewport.SetContent(m.styles.Muted.Render("No activity yet."))
		return
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Today's Activity"))
	sb.WriteString("\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%s  %s\n", m.styles.Bold.Render(e.Time), m.styles.Body.Render(e.Action)))
	}
	m.viewport.SetContent(sb.String())
}

// Update handles messages.
func (m HistoryPageModel) Update(msg tea.Msg) (HistoryPageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m HistoryPageModel) View() string {
	return m.viewport.View()
}
