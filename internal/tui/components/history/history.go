package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/onething/internal/models"
	"github.com/julianstephens/onething/internal/tui/theme"
	"github.com/julianstephens/onething/internal/utils"
)

type Model struct {
	entries  []models.Entry
	width    int
	height   int
	viewport viewport.Model
}


func New(entries []models.Entry, width, height int) Model {
	m := Model{
		entries:  entries,
		width:    width,
		height:   height,
		viewport: viewport.New(width, height),
	}
	m.updateViewportContent()
	return m
}

// SetEntries replaces the listed entries, most recent first.
func (m *Model) SetEntries(entries []models.Entry) {
	m.entries = entries
	m.updateViewportContent()
}

func (m Model) Len() int {
	return len(m.entries)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.updateViewportContent()
}

func (m *Model) updateViewportContent() {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("History (%d)", len(m.entries))))
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(theme.Note.Render("No entries yet. Answer today's question to begin."))
		m.viewport.SetContent(b.String())
		return
	}

	wrap := lipgloss.NewStyle().Width(max(m.width-2, 20))
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		header := theme.DateHeading.Render(utils.FormatDisplayDate(e.Date))
		if e.Mood != "" && e.Mood != models.MoodNone {
			header += "  " + theme.Note.Render(string(e.Mood))
		}
		b.WriteString(header + "\n")
		b.WriteString(theme.Secondary.Render(e.Question) + "\n")
		b.WriteString(wrap.Render(e.Answer))
	}
	m.viewport.SetContent(b.String())
}
