package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/onething/internal/constants"
	"github.com/julianstephens/onething/internal/journal"
	"github.com/julianstephens/onething/internal/logger"
	"github.com/julianstephens/onething/internal/models"
	"github.com/julianstephens/onething/internal/storage"
	"github.com/julianstephens/onething/internal/synthesis"
	"github.com/julianstephens/onething/internal/tui/components/history"
	"github.com/julianstephens/onething/internal/tui/components/month"
	"github.com/julianstephens/onething/internal/tui/components/today"
	"github.com/julianstephens/onething/internal/utils"
)

const tabCount = 3

// generatedMsg carries the result of a background generation.
type generatedMsg struct {
	anchor time.Time
	record models.MonthSummaryRecord
	err    error
}

type Model struct {
	store        storage.Provider
	orchestrator *synthesis.Orchestrator
	settings     models.Settings
	state        constants.SessionState
	keys         KeyMap
	help         help.Model
	todayModel   today.Model
	historyModel history.Model
	monthModel   month.Model
	form         *huh.Form
	answerForm   *AnswerFormModel
	formError    string // Error message to display for form operations
	cancel       context.CancelFunc
	quitting     bool
	width        int
	height       int
}

func NewModel(store storage.Provider, orch *synthesis.Orchestrator, settings models.Settings) Model {
	allowRegen := orch != nil && orch.AllowRegeneration()

	m := Model{
		store:        store,
		orchestrator: orch,
		settings:     settings,
		state:        constants.StateToday,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		todayModel:   today.New(journal.Day{}, 0, 0),
		historyModel: history.New(store.GetAllEntries(), 0, 0),
		monthModel:   month.New(allowRegen, 0, 0),
	}

	m.refreshToday()
	m.refreshMonth(m.now())
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// now returns the current time in the configured timezone, falling back to local time.
func (m Model) now() time.Time {
	now, err := utils.NowInTimezone(m.settings.Timezone)
	if err != nil {
		return time.Now()
	}
	return now
}

func (m *Model) refreshToday() {
	day, err := journal.Today(m.store, m.now())
	if err != nil {
		logger.Warn("Failed to load today's entry", "error", err)
		return
	}
	m.todayModel.SetDay(day)
}

func (m *Model) refreshHistory() {
	m.historyModel.SetEntries(m.store.GetAllEntries())
}

func (m *Model) refreshMonth(anchor time.Time) {
	if m.orchestrator == nil {
		return
	}
	status, err := m.orchestrator.Status(context.Background(), anchor)
	if err != nil {
		logger.Warn("Failed to load month status", "error", err)
		m.monthModel.SetError(err.Error())
		return
	}
	m.monthModel.SetStatus(anchor, status)
}

func (m *Model) refreshAll() {
	m.refreshToday()
	m.refreshHistory()
	anchor := m.monthModel.Anchor()
	if anchor.IsZero() {
		anchor = m.now()
	}
	m.refreshMonth(anchor)
}

// generate runs the orchestrator off the UI goroutine.
func (m *Model) generate(anchor time.Time, regenerate bool) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	orch := m.orchestrator
	return func() tea.Msg {
		defer cancel()
		rec, err := orch.Generate(ctx, anchor, synthesis.GenerateOptions{Regenerate: regenerate})
		return generatedMsg{anchor: anchor, record: rec, err: err}
	}
}
