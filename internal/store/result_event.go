package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendResultEvent(ctx context.Context, data ResultEventData) error {
	err := r.insert(ctx, ResultEventsTable.Name,
		[]string{"run_id", "question", "correct_path", "user_path", "attempts", "elapsed_ms", "mode"},
		[]any{data.RunID, data.Question, data.CorrectPath, data.UserPath, data.Attempts, data.ElapsedMs, data.Mode},
	)
	if err != nil {
		return fmt.Errorf("save result event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryResults(ctx context.Context, runID string) ([]ResultRecord, error) {
	query, args := sqlite().
		Select("sequence", "timestamp", "run_id", "question", "correct_path", "user_path",
			"attempts", "elapsed_ms", "mode").
		From(entsql.Table(ResultEventsTable.Name)).
		Where(entsql.EQ("run_id", runID)).
		OrderBy(entsql.Asc("question"), entsql.Asc("sequence")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []ResultRecord
	for rows.Next() {
		var res ResultRecord
		if err := rows.Scan(&res.Sequence, &res.Timestamp, &res.RunID, &res.Question,
			&res.CorrectPath, &res.UserPath, &res.Attempts, &res.ElapsedMs, &res.Mode); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}
