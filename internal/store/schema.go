package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const (
	tableCommands    = "command_events"
	tableCompletions = "completion_events"
	tableQuiz        = "quiz_events"
	tableLLM         = "llm_events"
)

// Every event table starts with the same three columns: row id, global
// sequence and unix-millisecond timestamp.
const eventColumns = `
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	sequence INTEGER NOT NULL UNIQUE,
	timestamp INTEGER NOT NULL`

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS ` + tableCommands + ` (` + eventColumns + `,
	session_id TEXT NOT NULL,
	module_id TEXT NOT NULL,
	input TEXT NOT NULL,
	kind TEXT NOT NULL,
	successful INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE INDEX IF NOT EXISTS command_events_module ON ` + tableCommands + ` (module_id)`,
	`CREATE TABLE IF NOT EXISTS ` + tableCompletions + ` (` + eventColumns + `,
	session_id TEXT NOT NULL,
	module_id TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS ` + tableQuiz + ` (` + eventColumns + `,
	lesson_id TEXT NOT NULL,
	question_id TEXT NOT NULL,
	answer_id TEXT NOT NULL,
	correct INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS ` + tableLLM + ` (` + eventColumns + `,
	provider TEXT NOT NULL,
	model TEXT NOT NULL,
	purpose TEXT NOT NULL,
	input_tokens INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	latency_ms INTEGER NOT NULL DEFAULT 0,
	success INTEGER NOT NULL DEFAULT 0,
	error_message TEXT NOT NULL DEFAULT '',
	request_body TEXT NOT NULL DEFAULT '',
	response_body TEXT NOT NULL DEFAULT ''
)`,
}

func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range ddl {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("%.40s: %w", stmt, err)
		}
	}
	return nil
}
