// Package tutor is the free-form AI terminal: a chat with a model that
// plans OpenSSL exercises, suggests commands, and reviews the output of
// commands run in a canned sandbox.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/certlab/internal/llm"
	"github.com/abhisek/certlab/internal/logger"
)

// Config tunes the conversation.
type Config struct {
	// MaxTurns bounds the history sent with each request; one turn is a
	// user message and the reply to it.
	MaxTurns int

	MaxTokens   int
	Temperature float64
}

func DefaultConfig() Config {
	return Config{MaxTurns: 12, MaxTokens: 1000, Temperature: 0.7}
}

// Reply is one tutor answer.
type Reply struct {
	Text string `json:"text"`

	// Commands are options the learner can pick and run next.
	Commands []string `json:"commands"`
}

// Tutor holds one conversation. It is safe for concurrent use, though
// calls are serialized.
type Tutor struct {
	id       string
	provider llm.Provider
	cfg      Config

	mu      sync.Mutex
	history []llm.Message
}

func New(p llm.Provider, cfg Config) *Tutor {
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = DefaultConfig().MaxTurns
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}
	return &Tutor{id: uuid.NewString(), provider: p, cfg: cfg}
}

// ID identifies the conversation in logs.
func (t *Tutor) ID() string { return t.id }

// Ask sends a chat message and returns the tutor's reply.
func (t *Tutor) Ask(ctx context.Context, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, errors.New("empty message")
	}
	return t.send(llm.WithPurpose(ctx, llm.PurposeTutorChat), text)
}

// Run executes command in the sandbox and asks the tutor to review the
// result. The sandbox output is returned even when the model call fails.
func (t *Tutor) Run(ctx context.Context, command string) (string, Reply, error) {
	command = strings.TrimSpace(command)
	output := Simulate(command)
	msg := fmt.Sprintf("I executed: %s\n\nOutput:\n%s", command, output)
	reply, err := t.send(llm.WithPurpose(ctx, llm.PurposeTutorRun), msg)
	return output, reply, err
}

func (t *Tutor) send(ctx context.Context, text string) (Reply, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.history = append(t.history, llm.Message{Role: llm.RoleUser, Content: text})
	resp, err := t.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    slices.Clone(t.history),
		Schema:      replySchema,
		MaxTokens:   t.cfg.MaxTokens,
		Temperature: t.cfg.Temperature,
	})

	var reply Reply
	var inv *llm.ErrInvalidResponse
	switch {
	case err == nil:
		if err := resp.Decode(&reply); err != nil {
			reply = parsePlain(resp.Text())
		}
	case errors.As(err, &inv) && len(inv.Content) > 0:
		// Models without structured output answer in prose.
		reply = parsePlain(string(inv.Content))
	default:
		t.history = t.history[:len(t.history)-1]
		logger.Logger.Warn("tutor request failed", "tutor", t.id, "err", err)
		return Reply{}, err
	}

	reply.Text = strings.TrimSpace(reply.Text)
	t.history = append(t.history, llm.Message{Role: llm.RoleAssistant, Content: reply.transcript()})
	t.trim()
	logger.Logger.Debug("tutor reply", "tutor", t.id, "commands", len(reply.Commands), "history", len(t.history))
	return reply, nil
}

// trim keeps the last MaxTurns turns, always starting on a user message.
func (t *Tutor) trim() {
	limit := t.cfg.MaxTurns * 2
	if len(t.history) <= limit {
		return
	}
	h := t.history[len(t.history)-limit:]
	for len(h) > 0 && h[0].Role != llm.RoleUser {
		h = h[1:]
	}
	t.history = append([]llm.Message(nil), h...)
}

// History returns a copy of the conversation so far.
func (t *Tutor) History() []llm.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]llm.Message(nil), t.history...)
}

// Reset forgets the conversation and starts a new one.
func (t *Tutor) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.history = nil
	t.id = uuid.NewString()
}

// transcript renders the reply the way the model is told to write
// suggestions, so the history reads consistently for it.
func (r Reply) transcript() string {
	if len(r.Commands) == 0 {
		return r.Text
	}
	return fmt.Sprintf("%s\n\nCOMMANDS: [%s]", r.Text, strings.Join(r.Commands, ", "))
}

var commandsPattern = regexp.MustCompile(`(?i)COMMANDS:\s*\[(.*?)\]`)

// parsePlain extracts a "COMMANDS: [a, b]" list from prose. The first list
// wins; every list is removed from the text.
func parsePlain(text string) Reply {
	var r Reply
	if m := commandsPattern.FindStringSubmatch(text); m != nil {
		for _, c := range strings.Split(m[1], ",") {
			if c = strings.TrimSpace(c); c != "" {
				r.Commands = append(r.Commands, c)
			}
		}
	}
	r.Text = strings.TrimSpace(commandsPattern.ReplaceAllString(text, ""))
	return r
}
