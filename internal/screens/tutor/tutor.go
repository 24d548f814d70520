// Package tutor is the AI terminal screen: a chat with the tutor where
// shell commands run in the sandbox and suggested commands can be picked
// by number.
package tutor

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/certlab/internal/logger"
	"github.com/abhisek/certlab/internal/screen"
	"github.com/abhisek/certlab/internal/tutor"
	"github.com/abhisek/certlab/internal/ui/components"
	"github.com/abhisek/certlab/internal/ui/layout"
)

const (
	requestTimeout = 90 * time.Second
	greeting       = "Hi! I'm your OpenSSL tutor. Ask me to walk you through a task, for example \"walk me through creating a CSR\", or type a command like \"openssl version\" to try it."
)

type lineKind int

const (
	lineUser lineKind = iota
	lineCommand
	lineOutput
	lineTutor
	lineError
)

type chatLine struct {
	kind lineKind
	text string
}

// replyMsg carries the outcome of an Ask or Run call.
type replyMsg struct {
	output string // sandbox output, Run only
	reply  tutor.Reply
	err    error
}

type spinnerTickMsg time.Time

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// TutorScreen is the chat view.
type TutorScreen struct {
	tutor *tutor.Tutor
	input components.TextInput

	lines       []chatLine
	suggestions []string
	waiting     bool
	frame       int
}

var _ screen.Screen = (*TutorScreen)(nil)
var _ screen.KeyHintProvider = (*TutorScreen)(nil)

// New creates a chat screen over t.
func New(t *tutor.Tutor) *TutorScreen {
	return &TutorScreen{
		tutor: t,
		input: components.NewTextInput("> ", "ask a question or run a command", 500),
		lines: []chatLine{{kind: lineTutor, text: greeting}},
	}
}

func (s *TutorScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *TutorScreen) Title() string {
	return "AI Terminal"
}

func (s *TutorScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Send"}}
	if len(s.suggestions) > 0 {
		hints = append(hints, layout.KeyHint{Key: "1-" + strconv.Itoa(len(s.suggestions)), Description: "Run suggestion"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+N", Description: "New chat"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *TutorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		s.handleReply(msg)
		return s, nil

	case spinnerTickMsg:
		if !s.waiting {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			if s.waiting {
				return s, nil
			}
			return s, s.send(s.input.Take())
		case "ctrl+n":
			if s.waiting {
				return s, nil
			}
			s.tutor.Reset()
			s.lines = []chatLine{{kind: lineTutor, text: greeting}}
			s.suggestions = nil
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// send routes one input line. A number picks a suggested command, sandbox
// commands are run and reviewed, and anything else is a chat message.
func (s *TutorScreen) send(line string) tea.Cmd {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(s.suggestions) {
		line = s.suggestions[n-1]
	}

	t := s.tutor
	var call func(ctx context.Context) replyMsg
	if tutor.IsSandboxCommand(line) {
		s.lines = append(s.lines, chatLine{kind: lineCommand, text: line})
		call = func(ctx context.Context) replyMsg {
			out, reply, err := t.Run(ctx, line)
			return replyMsg{output: out, reply: reply, err: err}
		}
	} else {
		s.lines = append(s.lines, chatLine{kind: lineUser, text: line})
		call = func(ctx context.Context) replyMsg {
			reply, err := t.Ask(ctx, line)
			return replyMsg{reply: reply, err: err}
		}
	}

	s.waiting = true
	s.suggestions = nil
	return tea.Batch(
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			return call(ctx)
		},
		spinnerTick(),
	)
}

func (s *TutorScreen) handleReply(msg replyMsg) {
	s.waiting = false
	if msg.output != "" {
		s.lines = append(s.lines, chatLine{kind: lineOutput, text: msg.output})
	}
	if msg.err != nil {
		logger.Logger.Warn("tutor reply failed", "tutor", s.tutor.ID(), "err", msg.err)
		s.lines = append(s.lines, chatLine{kind: lineError, text: "The tutor is unavailable: " + msg.err.Error()})
		return
	}
	if msg.reply.Text != "" {
		s.lines = append(s.lines, chatLine{kind: lineTutor, text: msg.reply.Text})
	}
	s.suggestions = msg.reply.Commands
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
