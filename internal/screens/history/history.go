package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certlab/internal/screen"
	"github.com/abhisek/certlab/internal/store"
	"github.com/abhisek/certlab/internal/ui/layout"
	"github.com/abhisek/certlab/internal/ui/theme"
)

const recentLimit = 300

// labRun groups the journaled commands of one lab activation.
type labRun struct {
	SessionID string
	ModuleID  string
	Commands  []store.CommandEvent // oldest first
	Successes int
}

type historyLoadedMsg struct {
	Runs []labRun
	Err  error
}

// HistoryScreen lists recent lab activations from the journal.
type HistoryScreen struct {
	events   store.EventRepo
	runs     []labRun
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen reading from events.
func New(events store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		events:   events,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		cmds, err := s.events.QueryCommands(context.Background(), store.QueryOpts{Limit: recentLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Runs: groupRuns(cmds)}
	}
}

// groupRuns turns newest-first events into runs ordered newest first, each
// holding its commands oldest first.
func groupRuns(events []store.CommandEvent) []labRun {
	var runs []labRun
	index := make(map[string]int)
	for _, e := range events {
		i, ok := index[e.SessionID]
		if !ok {
			i = len(runs)
			index[e.SessionID] = i
			runs = append(runs, labRun{SessionID: e.SessionID, ModuleID: e.ModuleID})
		}
		runs[i].Commands = append([]store.CommandEvent{e}, runs[i].Commands...)
		if e.Successful {
			runs[i].Successes++
		}
	}
	return runs
}

func (s *HistoryScreen) Title() string {
	return "Command history"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.runs = msg.Runs
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.runs)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.runs) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No commands yet. Open a lab and try one!")
	}

	lines := []string{""}
	selLine := 0
	for i, run := range s.runs {
		first := run.Commands[0].Timestamp.Local()

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
			selLine = len(lines)
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%s  %-22s %3d commands  %3d succeeded",
			prefix, first.Format("Jan 02 15:04"), run.ModuleID, len(run.Commands), run.Successes)))

		if s.expanded[i] {
			for _, c := range run.Commands {
				mark := theme.Correct.Render("✔")
				if !c.Successful {
					mark = lipgloss.NewStyle().Foreground(theme.TextDim).Render("·")
				}
				lines = append(lines, fmt.Sprintf("      %s %s %s", mark,
					theme.Body.Render(c.Input),
					theme.Hint.Render("("+c.Kind+")")))
			}
		}
	}

	// Keep the selected run on screen once the list outgrows the area.
	if over := selLine - height + 2; over > 0 {
		lines = lines[over:]
	}
	return strings.Join(lines, "\n")
}
