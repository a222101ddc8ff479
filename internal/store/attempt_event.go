package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendAttemptEvent(ctx context.Context, data AttemptEventData) error {
	err := r.insert(ctx, AttemptEventsTable.Name,
		[]string{"run_id", "question", "mode", "target_path", "target_value",
			"submitted_path", "correct", "elapsed_ms"},
		[]any{data.RunID, data.Question, data.Mode, data.TargetPath, data.TargetValue,
			data.SubmittedPath, data.Correct, data.ElapsedMs},
	)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAttempts(ctx context.Context, runID string) ([]AttemptRecord, error) {
	query, args := sqlite().
		Select("sequence", "timestamp", "run_id", "question", "mode", "target_path",
			"target_value", "submitted_path", "correct", "elapsed_ms").
		From(entsql.Table(AttemptEventsTable.Name)).
		Where(entsql.EQ("run_id", runID)).
		OrderBy(entsql.Asc("sequence")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var a AttemptRecord
		if err := rows.Scan(&a.Sequence, &a.Timestamp, &a.RunID, &a.Question, &a.Mode,
			&a.TargetPath, &a.TargetValue, &a.SubmittedPath, &a.Correct, &a.ElapsedMs); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}

func (r *eventRepo) AttemptStats(ctx context.Context, runID string) (AttemptStats, error) {
	query, args := sqlite().
		Select(entsql.Count("*"), "COALESCE(SUM(`correct`), 0)").
		From(entsql.Table(AttemptEventsTable.Name)).
		Where(entsql.EQ("run_id", runID)).
		Query()

	var stats AttemptStats
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&stats.Attempts, &stats.Correct); err != nil {
		return AttemptStats{}, fmt.Errorf("query attempt stats: %w", err)
	}
	return stats, nil
}
