package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendRunEvent(ctx context.Context, data RunEventData) error {
	if data.Action != ActionStart && data.Action != ActionEnd {
		return fmt.Errorf("unknown run action %q", data.Action)
	}
	err := r.insert(ctx, RunEventsTable.Name,
		[]string{"run_id", "action", "total_questions", "max_depth", "seed",
			"completed", "duration_secs", "export_path", "export_error"},
		[]any{data.RunID, data.Action, data.TotalQuestions, data.MaxDepth, data.Seed,
			data.Completed, data.DurationSecs, data.ExportPath, data.ExportError},
	)
	if err != nil {
		return fmt.Errorf("save run event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRuns(ctx context.Context, opts QueryOpts) ([]RunRecord, error) {
	sel := sqlite().
		Select("run_id", "timestamp", "total_questions", "max_depth", "seed").
		From(entsql.Table(RunEventsTable.Name)).
		Where(entsql.EQ("action", ActionStart)).
		OrderBy(entsql.Desc("sequence"))
	query, args := applyOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	var runs []RunRecord
	for rows.Next() {
		var run RunRecord
		if err := rows.Scan(&run.RunID, &run.StartedAt, &run.TotalQuestions, &run.MaxDepth, &run.Seed); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	// The store runs on one connection; release it before the end lookups.
	rows.Close()

	for i := range runs {
		if err := r.loadRunEnd(ctx, &runs[i]); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (r *eventRepo) loadRunEnd(ctx context.Context, run *RunRecord) error {
	query, args := sqlite().
		Select("timestamp", "completed", "duration_secs", "export_path", "export_error").
		From(entsql.Table(RunEventsTable.Name)).
		Where(entsql.And(
			entsql.EQ("run_id", run.RunID),
			entsql.EQ("action", ActionEnd),
		)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Query()

	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&run.EndedAt, &run.Completed, &run.DurationSecs, &run.ExportPath, &run.ExportError)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return fmt.Errorf("query end of run %s: %w", run.RunID, err)
	}
	run.Finished = true
	return nil
}

func (r *eventRepo) ResolveRunID(ctx context.Context, prefix string) (string, error) {
	if prefix == "" {
		return "", ErrRunNotFound
	}
	query, args := sqlite().
		Select("run_id").
		From(entsql.Table(RunEventsTable.Name)).
		Where(entsql.And(
			entsql.EQ("action", ActionStart),
			entsql.HasPrefix("run_id", prefix),
		)).
		Limit(2).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return "", fmt.Errorf("query run ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate run ids: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousRun, prefix)
	}
}
