package terminal

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/certlab/internal/catalog"
	"github.com/abhisek/certlab/internal/csr"
	"github.com/abhisek/certlab/internal/logger"
)

// EntryKind distinguishes echoed input from command output.
type EntryKind int

const (
	EntryInput EntryKind = iota
	EntryOutput
)

// Entry is one transcript line group, rendered verbatim by the UI.
type Entry struct {
	Kind EntryKind
	Text string
}

// Transcript messages emitted by the session itself.
const (
	CancelledMessage       = "CSR generation cancelled."
	CongratulationsMessage = "\n🎉 Congratulations! You've successfully completed all required commands for this exercise! 🎉\n"
)

// CommandRecord describes one resolved input for the journal.
type CommandRecord struct {
	SessionID  string
	ModuleID   string
	Input      string
	Kind       Kind
	Successful bool
}

// Journal receives activity events. Implementations must not retain the
// record after returning.
type Journal interface {
	RecordCommand(ctx context.Context, rec CommandRecord) error
	RecordCompletion(ctx context.Context, sessionID, moduleID string) error
}

// Session is one activation of a lab: its state, transcript, pending
// interactive command, and the one-shot completion latch. A Session is not
// safe for concurrent use; inputs are processed one at a time.
type Session struct {
	id       string
	module   *catalog.Module
	resolver *Resolver
	checker  *Checker

	state      *State
	transcript []Entry
	pending    *catalog.Command

	completionFired bool
	onComplete      func()
	journal         Journal
}

// Option configures a Session.
type Option func(*Session)

// WithJournal records every resolution and completion to j.
func WithJournal(j Journal) Option {
	return func(s *Session) { s.journal = j }
}

// WithOnComplete sets the callback invoked once when the lab is finished.
func WithOnComplete(fn func()) Option {
	return func(s *Session) { s.onComplete = fn }
}

// NewSession activates the lab moduleID.
func NewSession(r *Resolver, c *Checker, moduleID string, opts ...Option) (*Session, error) {
	mod, ok := r.Module(moduleID)
	if !ok {
		return nil, fmt.Errorf("unknown lab %q", moduleID)
	}
	s := &Session{
		module:   mod,
		resolver: r,
		checker:  c,
		state:    NewState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.start()
	return s, nil
}

func (s *Session) start() {
	s.id = uuid.NewString()
	s.state.Reset()
	s.pending = nil
	s.completionFired = false
	s.transcript = []Entry{{Kind: EntryOutput, Text: s.introduction()}}
}

func (s *Session) introduction() string {
	if s.module.Introduction != "" {
		return s.module.Introduction
	}
	return "Welcome to the terminal..."
}

// Submit resolves one line of input. Leading and trailing whitespace is
// dropped. Blank input and input received while an interactive prompt is
// open are ignored.
func (s *Session) Submit(ctx context.Context, input string) Result {
	input = strings.TrimSpace(input)
	if input == "" || s.pending != nil {
		return Result{Kind: KindIgnored}
	}

	s.append(EntryInput, input)
	res := s.resolver.Resolve(s.module.ID, input, s.state)

	if res.Kind == KindInteractive {
		s.pending = res.Command
	} else {
		s.append(EntryOutput, res.Output)
	}

	logger.Logger.Debug("resolved command",
		"session", s.id, "module", s.module.ID, "input", input,
		"kind", res.Kind, "successful", res.Successful)
	s.recordCommand(ctx, input, res)

	if res.Kind == KindExecuted {
		res.CompletionFired = s.CompleteOnce(ctx)
	}
	return res
}

// FinishInteractive completes the pending interactive command with the
// values the prompt collected. It returns a KindIgnored result when no
// prompt is pending.
func (s *Session) FinishInteractive(ctx context.Context, values csr.Values) Result {
	if s.pending == nil {
		return Result{Kind: KindIgnored}
	}
	cmd := s.pending
	s.pending = nil

	res := s.resolver.ResolveInteractive(s.module.ID, cmd.Value, values, s.state)
	s.append(EntryOutput, res.Output)
	s.recordCommand(ctx, cmd.Value, res)

	if res.Kind == KindExecuted {
		res.CompletionFired = s.CompleteOnce(ctx)
	}
	return res
}

// CancelInteractive abandons the pending prompt. Nothing is recorded as
// executed. It reports whether a prompt was pending.
func (s *Session) CancelInteractive() bool {
	if s.pending == nil {
		return false
	}
	s.pending = nil
	s.append(EntryOutput, CancelledMessage)
	return true
}

// Restart discards all state and starts a fresh activation of the same lab.
func (s *Session) Restart() {
	s.start()
}

// CompleteOnce fires the completion event if the lab has just become
// complete. It appends the congratulations entry, journals the completion
// and invokes the callback, all at most once per activation.
func (s *Session) CompleteOnce(ctx context.Context) bool {
	if !s.checker.ShouldFire(s.module.ID, s.state, s.completionFired) {
		return false
	}
	s.completionFired = true
	s.append(EntryOutput, CongratulationsMessage)

	logger.Logger.Info("lab complete", "session", s.id, "module", s.module.ID)
	if s.journal != nil {
		if err := s.journal.RecordCompletion(ctx, s.id, s.module.ID); err != nil {
			logger.Logger.Warn("journal completion failed", "module", s.module.ID, "err", err)
		}
	}
	if s.onComplete != nil {
		s.onComplete()
	}
	return true
}

func (s *Session) recordCommand(ctx context.Context, input string, res Result) {
	if s.journal == nil {
		return
	}
	err := s.journal.RecordCommand(ctx, CommandRecord{
		SessionID:  s.id,
		ModuleID:   s.module.ID,
		Input:      input,
		Kind:       res.Kind,
		Successful: res.Kind == KindExecuted && res.Successful,
	})
	if err != nil {
		logger.Logger.Warn("journal command failed", "module", s.module.ID, "err", err)
	}
}

func (s *Session) append(kind EntryKind, text string) {
	s.transcript = append(s.transcript, Entry{Kind: kind, Text: text})
}

// ID returns the activation id; it changes on Restart.
func (s *Session) ID() string { return s.id }

// Module returns the lab this session runs.
func (s *Session) Module() *catalog.Module { return s.module }

// Transcript returns a copy of the transcript.
func (s *Session) Transcript() []Entry {
	out := make([]Entry, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Pending returns the interactive command awaiting its prompt.
func (s *Session) Pending() (*catalog.Command, bool) {
	return s.pending, s.pending != nil
}

// Completed reports whether the completion event has fired.
func (s *Session) Completed() bool { return s.completionFired }

// State returns a snapshot of the lab state.
func (s *Session) State() *State { return s.state.Clone() }

// Progress reports how many of the lab's required commands have succeeded.
func (s *Session) Progress() (done, total int) {
	return s.checker.Progress(s.module.ID, s.state)
}
