// Package theme holds the palette and text styles shared by the TUI and its components.
package theme

import "github.com/charmbracelet/lipgloss"

// Palette
const (
	Accent  = lipgloss.Color("205")
	Muted   = lipgloss.Color("240")
	Subtle  = lipgloss.Color("245")
	Text    = lipgloss.Color("252")
	Success = lipgloss.Color("86")
	Caution = lipgloss.Color("214")
	Danger  = lipgloss.Color("196")
	Surface = lipgloss.Color("236")
)

// Frame
var (
	ActiveTab = lipgloss.NewStyle().
			Foreground(Accent).
			Background(Surface).
			Padding(0, 1).
			Bold(true)

	InactiveTab = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	Doc = lipgloss.NewStyle().Padding(1, 2)

	Banner = lipgloss.NewStyle().
		Foreground(Caution).
		Italic(true)

	Error = lipgloss.NewStyle().
		Foreground(Danger).
		Bold(true)
)

// Content
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent).
		MarginBottom(1)

	Question = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			MarginBottom(1)

	Body = lipgloss.NewStyle().Foreground(Text)

	// Note is for empty states and secondary details such as moods
	Note = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	Hint = Note.MarginTop(2)

	Section = lipgloss.NewStyle().
		MarginTop(1).
		MarginBottom(1)

	DateHeading = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	Secondary = lipgloss.NewStyle().Foreground(Subtle)
)

// Month
var (
	MeterLabel = Secondary.Width(12)

	Locked = lipgloss.NewStyle().Foreground(Caution)

	Unlocked = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	Failed = lipgloss.NewStyle().Foreground(Danger)

	Summary = Body.MarginTop(1)
)
