package month

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/onething/internal/monthly"
	"github.com/julianstephens/onething/internal/synthesis"
	"github.com/julianstephens/onething/internal/tui/theme"
)

// GenerateMsg asks the parent model to generate the shown month's reflection.
type GenerateMsg struct {
	Anchor     time.Time
	Regenerate bool
}

// ChangeMonthMsg asks the parent model to show the month Offset months away.
type ChangeMonthMsg struct {
	Offset int
}

type Model struct {
	anchor     time.Time
	status     synthesis.MonthStatus
	generating bool
	failed     bool
	errMsg     string
	allowRegen bool

	width    int
	height   int
	entries  progress.Model
	chars    progress.Model
	spinner  spinner.Model
	viewport viewport.Model
}


func New(allowRegeneration bool, width, height int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		allowRegen: allowRegeneration,
		width:      width,
		height:     height,
		entries:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		chars:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		spinner:    s,
		viewport:   viewport.New(width, height),
	}
	m.updateViewportContent()
	return m
}

// SetStatus shows status for the month containing anchor and clears any error.
func (m *Model) SetStatus(anchor time.Time, status synthesis.MonthStatus) {
	m.anchor = anchor
	m.status = status
	m.failed = false
	m.errMsg = ""
	m.updateViewportContent()
}

// SetGenerating toggles the in-progress indicator. The returned command keeps the spinner ticking.
func (m *Model) SetGenerating(generating bool) tea.Cmd {
	m.generating = generating
	m.updateViewportContent()
	if generating {
		return m.spinner.Tick
	}
	return nil
}

func (m *Model) SetError(msg string) {
	m.errMsg = msg
	m.updateViewportContent()
}

// SetFailed marks the last generation attempt as failed. It is cleared by the next SetStatus.
func (m *Model) SetFailed(msg string) {
	m.failed = true
	m.errMsg = msg
	m.updateViewportContent()
}

func (m Model) Failed() bool {
	return m.failed
}

// ErrorMessage returns the error shown under the month, if any.
func (m Model) ErrorMessage() string {
	return m.errMsg
}

func (m Model) Anchor() time.Time {
	return m.anchor
}

func (m Model) Generating() bool {
	return m.generating
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.updateViewportContent()
		return m, cmd
	case tea.KeyMsg:
		if m.generating {
			return m, nil
		}
		switch msg.String() {
		case "[":
			return m, func() tea.Msg { return ChangeMonthMsg{Offset: -1} }
		case "]":
			return m, func() tea.Msg { return ChangeMonthMsg{Offset: 1} }
		case "g":
			anchor := m.anchor
			return m, func() tea.Msg { return GenerateMsg{Anchor: anchor} }
		case "r":
			if m.allowRegen && m.status.State == synthesis.StateGenerated {
				anchor := m.anchor
				return m, func() tea.Msg { return GenerateMsg{Anchor: anchor, Regenerate: true} }
			}
		}
	}

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
	barWidth := max(width-lipgloss.Width(theme.MeterLabel.Render(""))-16, 10)
	m.entries.Width = barWidth
	m.chars.Width = barWidth
	m.viewport.Width = width
	m.viewport.Height = height
	m.updateViewportContent()
}

func ratio(value, target int) float64 {
	if target <= 0 || value >= target {
		return 1
	}
	return float64(value) / float64(target)
}

func (m *Model) updateViewportContent() {
	if m.anchor.IsZero() {
		m.viewport.SetContent("")
		return
	}

	e := m.status.Eligibility
	var sections []string
	sections = append(sections, theme.Title.Render(monthly.MonthLabel(m.anchor)))

	sections = append(sections,
		theme.MeterLabel.Render("Entries")+m.entries.ViewAs(ratio(e.EntryCount, e.MinEntries))+fmt.Sprintf("  %d/%d", e.EntryCount, e.MinEntries),
		theme.MeterLabel.Render("Characters")+m.chars.ViewAs(ratio(e.TotalAnswerLength, e.MinCharacters))+fmt.Sprintf("  %d/%d", e.TotalAnswerLength, e.MinCharacters),
		"",
	)

	hints := []string{"[/] change month"}
	switch {
	case m.generating || m.status.State == synthesis.StateGenerating:
		sections = append(sections, m.spinner.View()+" Generating your reflection...")
	case m.status.State == synthesis.StateGenerated && m.status.Reflection != nil:
		rec := m.status.Reflection
		sections = append(sections, theme.Unlocked.Render("Reflection"))
		sections = append(sections, theme.Summary.Width(max(m.width-4, 20)).Render(rec.Summary))
		sections = append(sections, theme.Hint.UnsetMarginTop().Render("Generated "+rec.GeneratedAt.Local().Format("January 2, 2006")))
		if m.allowRegen {
			hints = append(hints, "r regenerate")
		}
	case m.status.State == synthesis.StateUnlocked && m.failed:
		sections = append(sections, theme.Failed.Render("The last attempt failed. Nothing was saved."))
		hints = append(hints, "g try again")
	case m.status.State == synthesis.StateUnlocked:
		sections = append(sections, theme.Unlocked.Render("Unlocked! Your reflection is ready to generate."))
		hints = append(hints, "g generate")
	default:
		var needs []string
		if n := e.EntriesRemaining(); n > 0 {
			needs = append(needs, fmt.Sprintf("%d more entries", n))
		}
		if n := e.CharactersRemaining(); n > 0 {
			needs = append(needs, fmt.Sprintf("%d more characters", n))
		}
		sections = append(sections, theme.Locked.Render("Locked: "+strings.Join(needs, " and ")+" needed."))
	}

	if m.errMsg != "" {
		sections = append(sections, "", theme.Error.Render(m.errMsg))
	}

	sections = append(sections, theme.Hint.Render(strings.Join(hints, " • ")))
	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
