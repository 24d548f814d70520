package store

import (
	"context"
	"time"
)

// QueryOpts filters and pages event queries.
type QueryOpts struct {
	Limit    int       // max results (0 = unlimited)
	After    int64     // sequence > After
	Before   int64     // sequence < Before
	From     time.Time // timestamp >= From
	To       time.Time // timestamp <= To
	ModuleID string    // command queries only
}

// CommandEventData is one resolved lab input.
type CommandEventData struct {
	SessionID  string
	ModuleID   string
	Input      string
	Kind       string // resolution kind, e.g. "executed" or "unknown"
	Successful bool
}

// CommandEvent is a stored CommandEventData.
type CommandEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	CommandEventData
}

// CompletionEventData marks a finished lab.
type CompletionEventData struct {
	SessionID string
	ModuleID  string
}

// QuizAnswerEventData is one graded quiz answer.
type QuizAnswerEventData struct {
	LessonID   string
	QuestionID string
	AnswerID   string
	Correct    bool
}

// LLMRequestEventData captures one model call of the tutor.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLMRequestEventData.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// ModuleStats aggregates the journal of one lab.
type ModuleStats struct {
	ModuleID    string
	Attempts    int // inputs of any kind
	Successes   int // executed without a failure marker
	Completions int
}

// Stats summarizes the whole journal.
type Stats struct {
	Modules      []ModuleStats
	QuizAnswers  int
	QuizCorrect  int
	LLMCalls     int
	InputTokens  int
	OutputTokens int
}

// EventRepo appends and reads journal events.
type EventRepo interface {
	AppendCommand(ctx context.Context, data CommandEventData) error
	AppendCompletion(ctx context.Context, data CompletionEventData) error
	AppendQuizAnswer(ctx context.Context, data QuizAnswerEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryCommands returns command events, newest first.
	QueryCommands(ctx context.Context, opts QueryOpts) ([]CommandEvent, error)

	// QueryLLMEvents returns model calls, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// LLMEvent returns one model call by row id, or nil if it does not exist.
	LLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	Stats(ctx context.Context) (Stats, error)
}
