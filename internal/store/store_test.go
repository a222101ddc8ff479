package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendRunEvent(ctx, RunEventData{RunID: "run-a", Action: ActionStart, TotalQuestions: 30}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	if err := s.EventRepo().AppendRunEvent(ctx, RunEventData{RunID: "run-b", Action: ActionStart, TotalQuestions: 30}); err != nil {
		t.Fatalf("append after reopen: %v", err)
	}
	runs, err := s.EventRepo().QueryRuns(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if seq <= prev {
			t.Fatalf("sequence %d not greater than %d", seq, prev)
		}
		prev = seq
	}

	if err := s.seq.Restart(ctx); err != nil {
		t.Fatalf("restart: %v", err)
	}
	seq, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next after restart: %v", err)
	}
	if seq != 1 {
		t.Errorf("sequence after restart = %d, want 1", seq)
	}
}

func seedRun(t *testing.T, repo EventRepo, runID string, finished bool) {
	t.Helper()
	ctx := context.Background()

	if err := repo.AppendRunEvent(ctx, RunEventData{
		RunID: runID, Action: ActionStart, TotalQuestions: 2, MaxDepth: 2, Seed: 42,
	}); err != nil {
		t.Fatalf("append start: %v", err)
	}

	attempts := []AttemptEventData{
		{RunID: runID, Question: 1, Mode: "indented", TargetPath: "alpha", TargetValue: "beta", SubmittedPath: "alpha", Correct: true, ElapsedMs: 2500},
		{RunID: runID, Question: 2, Mode: "compact", TargetPath: "gamma.delta", TargetValue: "epsilon", SubmittedPath: "gamma", ElapsedMs: 3000},
		{RunID: runID, Question: 2, Mode: "compact", TargetPath: "gamma.delta", TargetValue: "epsilon", SubmittedPath: "delta", ElapsedMs: 6000},
		{RunID: runID, Question: 2, Mode: "compact", TargetPath: "gamma.delta", TargetValue: "epsilon", SubmittedPath: "gamma.delta", Correct: true, ElapsedMs: 10000},
	}
	for _, a := range attempts {
		if err := repo.AppendAttemptEvent(ctx, a); err != nil {
			t.Fatalf("append attempt: %v", err)
		}
	}

	// Appended out of order to check the query ordering.
	results := []ResultEventData{
		{RunID: runID, Question: 2, CorrectPath: "gamma.delta", UserPath: "gamma.delta", Attempts: 3, ElapsedMs: 10000, Mode: "compact"},
		{RunID: runID, Question: 1, CorrectPath: "alpha", UserPath: "alpha", Attempts: 1, ElapsedMs: 2500, Mode: "indented"},
	}
	for _, r := range results {
		if err := repo.AppendResultEvent(ctx, r); err != nil {
			t.Fatalf("append result: %v", err)
		}
	}

	if finished {
		if err := repo.AppendRunEvent(ctx, RunEventData{
			RunID: runID, Action: ActionEnd, TotalQuestions: 2, MaxDepth: 2, Seed: 42,
			Completed: 2, DurationSecs: 12.5, ExportPath: "out.xlsx",
		}); err != nil {
			t.Fatalf("append end: %v", err)
		}
	}
}

func TestQueryRuns(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	before := time.Now().Add(-time.Minute)
	seedRun(t, repo, "11111111-aaaa", true)
	seedRun(t, repo, "22222222-bbbb", false)

	runs, err := repo.QueryRuns(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}

	// Newest first.
	if runs[0].RunID != "22222222-bbbb" || runs[1].RunID != "11111111-aaaa" {
		t.Errorf("run order = %s, %s", runs[0].RunID, runs[1].RunID)
	}
	if runs[0].Finished {
		t.Error("unfinished run reported as finished")
	}

	done := runs[1]
	if !done.Finished || done.Completed != 2 || done.DurationSecs != 12.5 || done.ExportPath != "out.xlsx" {
		t.Errorf("finished run = %+v", done)
	}
	if done.TotalQuestions != 2 || done.MaxDepth != 2 || done.Seed != 42 {
		t.Errorf("start fields = %+v", done)
	}
	if done.StartedAt.Before(before) || done.EndedAt.Before(done.StartedAt) {
		t.Errorf("timestamps started=%v ended=%v", done.StartedAt, done.EndedAt)
	}

	limited, err := repo.QueryRuns(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].RunID != "22222222-bbbb" {
		t.Errorf("limited = %+v", limited)
	}

	future, err := repo.QueryRuns(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query future: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("got %d runs from the future", len(future))
	}
}

func TestQueryResultsAndAttempts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	seedRun(t, repo, "run-1", true)
	seedRun(t, repo, "run-2", true)

	results, err := repo.QueryResults(ctx, "run-1")
	if err != nil {
		t.Fatalf("query results: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Question != 1 || results[1].Question != 2 {
		t.Errorf("result order = %d, %d", results[0].Question, results[1].Question)
	}
	if results[1].Attempts != 3 || results[1].ElapsedMs != 10000 || results[1].UserPath != "gamma.delta" {
		t.Errorf("result 2 = %+v", results[1])
	}

	attempts, err := repo.QueryAttempts(ctx, "run-1")
	if err != nil {
		t.Fatalf("query attempts: %v", err)
	}
	if len(attempts) != 4 {
		t.Fatalf("got %d attempts, want 4", len(attempts))
	}
	for i := 1; i < len(attempts); i++ {
		if attempts[i].Sequence <= attempts[i-1].Sequence {
			t.Errorf("attempts not in sequence order at %d", i)
		}
	}
	if !attempts[3].Correct || attempts[1].Correct {
		t.Errorf("correct flags = %v %v", attempts[1].Correct, attempts[3].Correct)
	}

	stats, err := repo.AttemptStats(ctx, "run-1")
	if err != nil {
		t.Fatalf("attempt stats: %v", err)
	}
	if stats.Attempts != 4 || stats.Correct != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Accuracy() != 0.5 {
		t.Errorf("accuracy = %v, want 0.5", stats.Accuracy())
	}

	empty, err := repo.AttemptStats(ctx, "nope")
	if err != nil {
		t.Fatalf("attempt stats (empty): %v", err)
	}
	if empty.Attempts != 0 || empty.Accuracy() != 0 {
		t.Errorf("empty stats = %+v", empty)
	}
}

func TestResolveRunID(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	seedRun(t, repo, "abc-111", true)
	seedRun(t, repo, "abd-222", true)

	id, err := repo.ResolveRunID(ctx, "abc")
	if err != nil || id != "abc-111" {
		t.Errorf("ResolveRunID(abc) = %q, %v", id, err)
	}
	if _, err := repo.ResolveRunID(ctx, "ab"); !errors.Is(err, ErrAmbiguousRun) {
		t.Errorf("ResolveRunID(ab) err = %v, want ErrAmbiguousRun", err)
	}
	if _, err := repo.ResolveRunID(ctx, "zzz"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("ResolveRunID(zzz) err = %v, want ErrRunNotFound", err)
	}
	if _, err := repo.ResolveRunID(ctx, ""); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("ResolveRunID(\"\") err = %v, want ErrRunNotFound", err)
	}
}

func TestAppendRunEventRejectsUnknownAction(t *testing.T) {
	s := openTestStore(t)
	err := s.EventRepo().AppendRunEvent(context.Background(), RunEventData{RunID: "x", Action: "pause"})
	if err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	seedRun(t, repo, "run-1", true)
	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	runs, err := repo.QueryRuns(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query runs: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs after reset", len(runs))
	}
	results, err := repo.QueryResults(ctx, "run-1")
	if err != nil {
		t.Fatalf("query results: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results after reset", len(results))
	}

	seedRun(t, repo, "run-2", false)
	attempts, err := repo.QueryAttempts(ctx, "run-2")
	if err != nil {
		t.Fatalf("query attempts: %v", err)
	}
	if attempts[0].Sequence != 2 {
		t.Errorf("first attempt sequence after reset = %d, want 2", attempts[0].Sequence)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv(EnvDB, filepath.Join(dir, "env", "custom.db"))
	p, err := DefaultDBPath()
	if err != nil || p != filepath.Join(dir, "env", "custom.db") {
		t.Errorf("env path = %q, %v", p, err)
	}

	t.Setenv(EnvDB, "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil || p != filepath.Join(dir, "pathquiz", "pathquiz.db") {
		t.Errorf("xdg path = %q, %v", p, err)
	}
}
