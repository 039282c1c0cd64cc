package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/onething/internal/constants"
	apperrors "github.com/julianstephens/onething/internal/errors"
	"github.com/julianstephens/onething/internal/journal"
	"github.com/julianstephens/onething/internal/synthesis"
	"github.com/julianstephens/onething/internal/tui/components/month"
	"github.com/julianstephens/onething/internal/tui/components/today"
	"github.com/julianstephens/onething/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.state == constants.StateAnswering {
		return m.updateAnswering(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Tabs, help and document padding
		contentWidth := msg.Width - 4
		contentHeight := msg.Height - 6
		m.todayModel.SetSize(contentWidth, contentHeight)
		m.historyModel.SetSize(contentWidth, contentHeight)
		m.monthModel.SetSize(contentWidth, contentHeight)
		return m, nil

	case today.AnswerMsg:
		return m.openAnswerForm()

	case month.ChangeMonthMsg:
		anchor := m.monthModel.Anchor()
		target := time.Date(anchor.Year(), anchor.Month()+time.Month(msg.Offset), 1, 0, 0, 0, 0, anchor.Location())
		if utils.IsFutureMonth(target, m.now()) {
			return m, nil
		}
		m.refreshMonth(target)
		return m, nil

	case month.GenerateMsg:
		if m.orchestrator == nil {
			m.monthModel.SetError("Reflections are not configured.")
			return m, nil
		}
		spin := m.monthModel.SetGenerating(true)
		return m, tea.Batch(spin, m.generate(msg.Anchor, msg.Regenerate))

	case generatedMsg:
		m.cancel = nil
		m.monthModel.SetGenerating(false)
		m.refreshMonth(msg.anchor)
		if msg.err != nil {
			if synthesis.AttemptState(msg.err) == synthesis.StateFailed {
				m.monthModel.SetFailed(apperrors.Describe(msg.err))
			} else {
				m.monthModel.SetError(apperrors.Describe(msg.err))
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.monthModel, cmd = m.monthModel.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.cancel != nil {
				m.cancel()
			}
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Right):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab), key.Matches(msg, m.keys.Left):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateToday:
		m.todayModel, cmd = m.todayModel.Update(msg)
	case constants.StateHistory:
		m.historyModel, cmd = m.historyModel.Update(msg)
	case constants.StateMonth:
		m.monthModel, cmd = m.monthModel.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) openAnswerForm() (tea.Model, tea.Cmd) {
	day := m.todayModel.Day()
	m.answerForm = NewAnswerFormModel(day)
	m.form = NewAnswerForm(day, m.answerForm)
	m.formError = ""
	m.state = constants.StateAnswering
	return m, m.form.Init()
}

func (m Model) updateAnswering(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = "" // Clear error on cancel
		m.state = constants.StateToday
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		day := m.todayModel.Day()
		_, err := journal.SaveAnswer(m.store, day.Date, m.answerForm.Answer, m.answerForm.Mood, m.now())
		if err != nil {
			// Stay in form state to allow retry
			m.formError = fmt.Sprintf("Failed to save answer: %v", err)
			if errors.Is(err, journal.ErrFutureDate) {
				m.formError = "The day has not started yet in your timezone."
			}
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		m.formError = ""
		m.refreshAll()
		m.state = constants.StateToday
	case huh.StateAborted:
		m.formError = "" // Clear error on abort
		m.state = constants.StateToday
	}
	return m, tea.Batch(cmds...)
}
