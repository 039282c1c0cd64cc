package today

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/onething/internal/journal"
	"github.com/julianstephens/onething/internal/models"
	"github.com/julianstephens/onething/internal/tui/theme"
	"github.com/julianstephens/onething/internal/utils"
)

// AnswerMsg asks the parent model to open the answer form.
type AnswerMsg struct{}

type Model struct {
	day      journal.Day
	width    int
	height   int
	viewport viewport.Model
}


func New(day journal.Day, width, height int) Model {
	m := Model{
		day:      day,
		width:    width,
		height:   height,
		viewport: viewport.New(width, height),
	}
	m.updateViewportContent()
	return m
}

func (m *Model) SetDay(day journal.Day) {
	m.day = day
	m.updateViewportContent()
}

func (m Model) Day() journal.Day {
	return m.day
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "a", "e", "enter":
			return m, func() tea.Msg { return AnswerMsg{} }
		}
	}
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
	var sections []string

	sections = append(sections, theme.Title.Render(utils.FormatDisplayDate(m.day.Date)))
	sections = append(sections, theme.Question.Render(m.day.Question))

	hint := "Press 'a' to answer."
	if m.day.Entry == nil {
		sections = append(sections, theme.Section.Render(theme.Note.Render("Not answered yet.")))
	} else {
		sections = append(sections, theme.Section.Render(theme.Body.Width(max(m.width-4, 20)).Render(m.day.Entry.Answer)))
		if m.day.Entry.Mood != "" && m.day.Entry.Mood != models.MoodNone {
			sections = append(sections, theme.Note.MarginTop(1).Render(fmt.Sprintf("Mood: %s", m.day.Entry.Mood)))
		}
		hint = "Press 'e' to edit your answer."
	}

	sections = append(sections, theme.Hint.Render(hint))

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
