package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builder over the shared
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

// insert appends one row to table, stamping sequence and timestamp.
func (r *eventRepo) insert(ctx context.Context, table string, cols []string, vals []any) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, cols...)...).
		Values(append([]any{seq, time.Now().UnixMilli()}, vals...)...).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func (r *eventRepo) AppendCommand(ctx context.Context, data CommandEventData) error {
	return r.insert(ctx, tableCommands,
		[]string{"session_id", "module_id", "input", "kind", "successful"},
		[]any{data.SessionID, data.ModuleID, data.Input, data.Kind, data.Successful})
}

func (r *eventRepo) AppendCompletion(ctx context.Context, data CompletionEventData) error {
	return r.insert(ctx, tableCompletions,
		[]string{"session_id", "module_id"},
		[]any{data.SessionID, data.ModuleID})
}

func (r *eventRepo) QueryCommands(ctx context.Context, opts QueryOpts) ([]CommandEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "timestamp", "session_id", "module_id", "input", "kind", "successful").
		From(entsql.Table(tableCommands))
	applyOpts(sel, opts)
	if opts.ModuleID != "" {
		sel.Where(entsql.EQ("module_id", opts.ModuleID))
	}

	var out []CommandEvent
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			e  CommandEvent
			ts int64
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.SessionID, &e.ModuleID, &e.Input, &e.Kind, &e.Successful); err != nil {
			return err
		}
		e.Timestamp = time.UnixMilli(ts)
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query commands: %w", err)
	}
	return out, nil
}

// applyOpts adds the common filters, newest-first order and limit.
func applyOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}

// query runs sel and calls scan for every row.
func (r *eventRepo) query(ctx context.Context, sel *entsql.Selector, scan func(*entsql.Rows) error) error {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
