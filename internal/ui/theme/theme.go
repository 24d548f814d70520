// Package theme holds the terminal palette and shared lipgloss styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette: phosphor green on a dark console.
var (
	Primary   = lipgloss.Color("#22C55E") // Terminal green
	Secondary = lipgloss.Color("#38BDF8") // Sky
	Accent    = lipgloss.Color("#FACC15") // Amber
	Success   = lipgloss.Color("#4ADE80")
	Error     = lipgloss.Color("#F87171")
	Text      = lipgloss.Color("#E2E8F0")
	TextDim   = lipgloss.Color("#64748B")
	BgDark    = lipgloss.Color("#0B1120")
	BgCard    = lipgloss.Color("#111827")
	Border    = lipgloss.Color("#1F2937")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Diagram = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(Secondary).
		Foreground(Secondary).
		Padding(0, 1)
)

// Terminal transcript
var (
	PromptSign = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Echo = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	Output = lipgloss.NewStyle().
		Foreground(Text)

	FailedOutput = lipgloss.NewStyle().
			Foreground(Error)

	FieldPrompt = lipgloss.NewStyle().
			Foreground(Accent)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Badge = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(Success).
		Bold(true).
		Padding(0, 1)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Primary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
