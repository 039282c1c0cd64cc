package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/onething/internal/constants"
	"github.com/julianstephens/onething/internal/tui/theme"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateToday:
		content = theme.Doc.Render(m.todayModel.View())
	case constants.StateHistory:
		content = theme.Doc.Render(m.historyModel.View())
	case constants.StateMonth:
		content = theme.Doc.Render(m.monthModel.View())
	case constants.StateAnswering:
		content = m.viewAnswering()
	}

	var banner string
	if m.orchestrator == nil && m.state == constants.StateMonth {
		banner = theme.Banner.Render("Monthly reflections are unavailable: check the synthesis section of your config.")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Today", "History", "Month"}
	active := m.state
	if active == constants.StateAnswering {
		active = constants.StateToday
	}
	for i, title := range tabTitles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, theme.ActiveTab.Render(title))
		} else {
			tabs = append(tabs, theme.InactiveTab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewAnswering() string {
	if m.form == nil {
		return ""
	}
	view := m.form.View()
	if m.formError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, "", theme.Error.Render(m.formError))
	}
	return theme.Doc.Render(view)
}
