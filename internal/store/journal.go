package store

import (
	"context"

	"github.com/abhisek/certlab/internal/terminal"
)

// SessionJournal feeds a lab session's activity into the event journal.
type SessionJournal struct {
	Events EventRepo
}

var _ terminal.Journal = SessionJournal{}

func (j SessionJournal) RecordCommand(ctx context.Context, rec terminal.CommandRecord) error {
	return j.Events.AppendCommand(ctx, CommandEventData{
		SessionID:  rec.SessionID,
		ModuleID:   rec.ModuleID,
		Input:      rec.Input,
		Kind:       rec.Kind.String(),
		Successful: rec.Successful,
	})
}

func (j SessionJournal) RecordCompletion(ctx context.Context, sessionID, moduleID string) error {
	return j.Events.AppendCompletion(ctx, CompletionEventData{SessionID: sessionID, ModuleID: moduleID})
}
