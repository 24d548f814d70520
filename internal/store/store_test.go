package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/certlab/internal/catalog"
	"github.com/abhisek/certlab/internal/terminal"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	tests := []struct{ pragma, want string }{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL
	}
	for _, tt := range tests {
		var got string
		require.NoError(t, s.DB().QueryRow("PRAGMA "+tt.pragma).Scan(&got))
		assert.Equal(t, tt.want, got, tt.pragma)
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"global_sequence", tableCommands, tableCompletions, tableQuiz, tableLLM} {
		var name string
		err := s.DB().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendCompletion(ctx, CompletionEventData{SessionID: "s", ModuleID: "create-csr"}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.EventRepo().AppendCompletion(ctx, CompletionEventData{SessionID: "s", ModuleID: "create-csr"}))

	st, err := s.EventRepo().Stats(ctx)
	require.NoError(t, err)
	require.Len(t, st.Modules, 1)
	assert.Equal(t, 2, st.Modules[0].Completions)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	sc, err := newSequenceCounter(s.DB())
	require.NoError(t, err)

	for want := int64(1); want <= 5; want++ {
		got, err := sc.Next(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestCommandEvents(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	inputs := []CommandEventData{
		{SessionID: "a", ModuleID: "install-openssl", Input: "openssl version", Kind: "executed", Successful: true},
		{SessionID: "a", ModuleID: "install-openssl", Input: "opnssl", Kind: "unknown"},
		{SessionID: "b", ModuleID: "create-csr", Input: "ls", Kind: "executed", Successful: true},
	}
	for _, in := range inputs {
		require.NoError(t, repo.AppendCommand(ctx, in))
	}

	all, err := repo.QueryCommands(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "ls", all[0].Input, "newest first")
	assert.Greater(t, all[0].Sequence, all[1].Sequence)
	assert.WithinDuration(t, time.Now(), all[0].Timestamp, time.Minute)

	install, err := repo.QueryCommands(ctx, QueryOpts{ModuleID: "install-openssl"})
	require.NoError(t, err)
	require.Len(t, install, 2)
	assert.False(t, install[0].Successful)
	assert.True(t, install[1].Successful)

	limited, err := repo.QueryCommands(ctx, QueryOpts{Limit: 1, Before: all[0].Sequence})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "opnssl", limited[0].Input)

	after, err := repo.QueryCommands(ctx, QueryOpts{After: all[1].Sequence})
	require.NoError(t, err)
	assert.Len(t, after, 1)

	future, err := repo.QueryCommands(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, future)
}

func TestLLMEvents(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "tutor-chat",
		InputTokens: 120, OutputTokens: 40, LatencyMs: 800, Success: true,
		RequestBody: "[user]\nwhat is a CSR?", ResponseBody: `{"text":"..."}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "tutor-run", ErrorMessage: "rate limited",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "openai", events[0].Provider)
	assert.False(t, events[0].Success)
	assert.Equal(t, "rate limited", events[0].ErrorMessage)

	first, err := repo.LLMEvent(ctx, events[1].ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, first.Success)
	assert.Equal(t, 120, first.InputTokens)
	assert.Equal(t, "[user]\nwhat is a CSR?", first.RequestBody)

	missing, err := repo.LLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStats(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	empty, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Modules)
	assert.Zero(t, empty.QuizAnswers)

	for _, ok := range []bool{true, false, true} {
		require.NoError(t, repo.AppendCommand(ctx, CommandEventData{SessionID: "s", ModuleID: "verify-chain", Input: "x", Kind: "executed", Successful: ok}))
	}
	require.NoError(t, repo.AppendCommand(ctx, CommandEventData{SessionID: "s", ModuleID: "build-chain", Input: "help", Kind: "help"}))
	require.NoError(t, repo.AppendCompletion(ctx, CompletionEventData{SessionID: "s", ModuleID: "verify-chain"}))
	require.NoError(t, repo.AppendQuizAnswer(ctx, QuizAnswerEventData{LessonID: "openssl", QuestionID: "q1", AnswerID: "a", Correct: true}))
	require.NoError(t, repo.AppendQuizAnswer(ctx, QuizAnswerEventData{LessonID: "openssl", QuestionID: "q2", AnswerID: "c"}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "tutor-chat", InputTokens: 10, OutputTokens: 5}))

	st, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ModuleStats{
		{ModuleID: "build-chain", Attempts: 1},
		{ModuleID: "verify-chain", Attempts: 3, Successes: 2, Completions: 1},
	}, st.Modules)
	assert.Equal(t, 2, st.QuizAnswers)
	assert.Equal(t, 1, st.QuizCorrect)
	assert.Equal(t, 1, st.LLMCalls)
	assert.Equal(t, 10, st.InputTokens)
	assert.Equal(t, 5, st.OutputTokens)
}

func TestSessionJournal(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	r := terminal.NewResolver(catalog.Default())
	s, err := terminal.NewSession(r, terminal.NewChecker(), "install-openssl",
		terminal.WithJournal(SessionJournal{Events: repo}))
	require.NoError(t, err)

	s.Submit(ctx, "help")
	s.Submit(ctx, "openssl version")
	s.Submit(ctx, "brew install openssl")

	cmds, err := repo.QueryCommands(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	assert.Equal(t, "brew install openssl", cmds[0].Input)
	assert.True(t, cmds[0].Successful)
	assert.Equal(t, s.ID(), cmds[0].SessionID)
	assert.Equal(t, "executed", cmds[1].Kind)
	assert.False(t, cmds[1].Successful, "openssl is not installed yet")
	assert.Equal(t, "help", cmds[2].Kind)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv(EnvDB, filepath.Join(dir, "custom", "x.db"))
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "custom", "x.db"), p)
	assert.DirExists(t, filepath.Join(dir, "custom"))

	t.Setenv(EnvDB, "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "certlab", "certlab.db"), p)
}
