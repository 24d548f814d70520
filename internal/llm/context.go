package llm

import "context"

// Purposes recorded with each journaled call.
const (
	PurposeTutorChat = "tutor-chat"
	PurposeTutorRun  = "tutor-run"
)

type purposeKey struct{}

// WithPurpose labels the calls made with ctx for the journal.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
