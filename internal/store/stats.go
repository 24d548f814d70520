package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	byModule := make(map[string]*ModuleStats)
	module := func(id string) *ModuleStats {
		m, ok := byModule[id]
		if !ok {
			m = &ModuleStats{ModuleID: id}
			byModule[id] = m
		}
		return m
	}

	b := entsql.Dialect(dialect.SQLite)

	commands := b.Select("module_id", entsql.As(entsql.Count("*"), "attempts"), entsql.As(entsql.Sum("successful"), "successes")).
		From(entsql.Table(tableCommands)).
		GroupBy("module_id")
	err := r.query(ctx, commands, func(rows *entsql.Rows) error {
		var (
			id                  string
			attempts, successes int
		)
		if err := rows.Scan(&id, &attempts, &successes); err != nil {
			return err
		}
		m := module(id)
		m.Attempts, m.Successes = attempts, successes
		return nil
	})
	if err != nil {
		return st, fmt.Errorf("command stats: %w", err)
	}

	completions := b.Select("module_id", entsql.As(entsql.Count("*"), "completions")).
		From(entsql.Table(tableCompletions)).
		GroupBy("module_id")
	err = r.query(ctx, completions, func(rows *entsql.Rows) error {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return err
		}
		module(id).Completions = n
		return nil
	})
	if err != nil {
		return st, fmt.Errorf("completion stats: %w", err)
	}

	quiz := b.Select(entsql.Count("*"), entsql.Sum("correct")).From(entsql.Table(tableQuiz))
	err = r.query(ctx, quiz, func(rows *entsql.Rows) error {
		var correct sql.NullInt64
		if err := rows.Scan(&st.QuizAnswers, &correct); err != nil {
			return err
		}
		st.QuizCorrect = int(correct.Int64)
		return nil
	})
	if err != nil {
		return st, fmt.Errorf("quiz stats: %w", err)
	}

	llm := b.Select(entsql.Count("*"), entsql.Sum("input_tokens"), entsql.Sum("output_tokens")).From(entsql.Table(tableLLM))
	err = r.query(ctx, llm, func(rows *entsql.Rows) error {
		var in, out sql.NullInt64
		if err := rows.Scan(&st.LLMCalls, &in, &out); err != nil {
			return err
		}
		st.InputTokens, st.OutputTokens = int(in.Int64), int(out.Int64)
		return nil
	})
	if err != nil {
		return st, fmt.Errorf("llm stats: %w", err)
	}

	for _, m := range byModule {
		st.Modules = append(st.Modules, *m)
	}
	sort.Slice(st.Modules, func(i, j int) bool { return st.Modules[i].ModuleID < st.Modules[j].ModuleID })
	return st, nil
}
