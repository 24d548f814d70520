// Package lab is the simulated terminal screen of a hands-on lesson.
package lab

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/certlab/internal/csr"
	"github.com/abhisek/certlab/internal/logger"
	"github.com/abhisek/certlab/internal/screen"
	"github.com/abhisek/certlab/internal/terminal"
	"github.com/abhisek/certlab/internal/ui/components"
	"github.com/abhisek/certlab/internal/ui/layout"
)

const shellPrompt = "$ "

// LabScreen runs one terminal session. While an interactive command is
// pending it collects the Distinguished Name fields line by line.
type LabScreen struct {
	deps    *screen.Deps
	session *terminal.Session
	input   components.TextInput

	// prompt is non-nil while an interactive command collects its fields.
	prompt *csr.Prompt
}

var _ screen.Screen = (*LabScreen)(nil)
var _ screen.KeyHintProvider = (*LabScreen)(nil)
var _ screen.EscapeHandler = (*LabScreen)(nil)

// New starts a session of the lab moduleID. Finishing the lab marks it done
// in deps.Progress.
func New(deps *screen.Deps, moduleID string) (*LabScreen, error) {
	sess, err := terminal.NewSession(deps.Resolver, deps.Checker, moduleID,
		terminal.WithJournal(deps.Journal()),
		terminal.WithOnComplete(func() { deps.Progress.MarkTerminal(moduleID) }),
	)
	if err != nil {
		return nil, err
	}
	return &LabScreen{
		deps:    deps,
		session: sess,
		input:   components.NewTextInput(shellPrompt, "type a command, or 'help'", 256),
	}, nil
}

func (s *LabScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *LabScreen) Title() string {
	return s.session.Module().Title
}

func (s *LabScreen) CapturesEscape() bool {
	return s.prompt != nil
}

func (s *LabScreen) KeyHints() []layout.KeyHint {
	if s.prompt != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Accept default"},
			{Key: ".", Description: "Leave blank"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Run"},
		{Key: "↑↓", Description: "History"},
		{Key: "Ctrl+R", Description: "Restart"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LabScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter":
			s.submit(s.input.Take())
			return s, nil
		case "esc":
			s.cancelPrompt()
			return s, nil
		case "ctrl+r":
			s.restart()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit routes one line either to the open prompt or to the session.
func (s *LabScreen) submit(line string) {
	ctx := context.Background()

	if s.prompt != nil {
		s.prompt.Commit(line)
		if !s.prompt.Done() {
			s.syncPrompt()
			return
		}
		values := s.prompt.Values()
		s.prompt = nil
		s.syncPrompt()
		res := s.session.FinishInteractive(ctx, values)
		logger.Logger.Debug("interactive command finished",
			"module", s.session.Module().ID, "subject", values.Subject(), "completion", res.CompletionFired)
		return
	}

	if strings.TrimSpace(line) == "" {
		return
	}
	res := s.session.Submit(ctx, line)
	if res.Kind == terminal.KindInteractive {
		s.prompt = csr.NewPrompt()
		s.syncPrompt()
	}
}

func (s *LabScreen) cancelPrompt() {
	if s.session.CancelInteractive() {
		s.prompt = nil
		s.syncPrompt()
	}
}

func (s *LabScreen) restart() {
	s.session.Restart()
	s.prompt = nil
	s.syncPrompt()
}

// syncPrompt shows the current field question, or the shell prompt when no
// field is pending.
func (s *LabScreen) syncPrompt() {
	if s.prompt == nil {
		s.input.SetPrompt(shellPrompt)
		return
	}
	if f, ok := s.prompt.Current(); ok {
		s.input.SetPrompt(f.PromptLine() + " ")
	}
}

// Session exposes the running session.
func (s *LabScreen) Session() *terminal.Session {
	return s.session
}
