package store

import (
	"context"
	"errors"
	"time"
)

// Run event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

var (
	ErrRunNotFound  = errors.New("run not found")
	ErrAmbiguousRun = errors.New("run id prefix matches more than one run")
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// RunEventData captures the start or end of a run.
type RunEventData struct {
	RunID          string
	Action         string
	TotalQuestions int
	MaxDepth       int
	Seed           int64

	// End only.
	Completed    int
	DurationSecs float64
	ExportPath   string
	ExportError  string
}

// AttemptEventData captures one submitted path.
type AttemptEventData struct {
	RunID         string
	Question      int
	Mode          string
	TargetPath    string
	TargetValue   string
	SubmittedPath string
	Correct       bool
	ElapsedMs     int64
}

// ResultEventData captures one completed question.
type ResultEventData struct {
	RunID       string
	Question    int
	CorrectPath string
	UserPath    string
	Attempts    int
	ElapsedMs   int64
	Mode        string
}

// RunRecord is one run as reconstructed from its run events.
type RunRecord struct {
	RunID          string
	StartedAt      time.Time
	TotalQuestions int
	MaxDepth       int
	Seed           int64

	// Finished is false for runs that were quit before the end event.
	Finished     bool
	EndedAt      time.Time
	Completed    int
	DurationSecs float64
	ExportPath   string
	ExportError  string
}

// AttemptRecord is a stored attempt event.
type AttemptRecord struct {
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// ResultRecord is a stored result event.
type ResultRecord struct {
	Sequence  int64
	Timestamp time.Time
	ResultEventData
}

// AttemptStats totals the attempts of one run.
type AttemptStats struct {
	Attempts int
	Correct  int
}

// Accuracy returns correct over attempts, 0 when there were none.
func (s AttemptStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// EventRepo provides append and query access to quiz events.
type EventRepo interface {
	// AppendRunEvent records the start or end of a run.
	AppendRunEvent(ctx context.Context, data RunEventData) error

	// AppendAttemptEvent records one submitted path.
	AppendAttemptEvent(ctx context.Context, data AttemptEventData) error

	// AppendResultEvent records one completed question.
	AppendResultEvent(ctx context.Context, data ResultEventData) error

	// QueryRuns returns runs newest first. Limit and the sequence/time
	// bounds apply to the start events.
	QueryRuns(ctx context.Context, opts QueryOpts) ([]RunRecord, error)

	// ResolveRunID expands a unique run id prefix to the full id.
	ResolveRunID(ctx context.Context, prefix string) (string, error)

	// QueryResults returns the completed questions of a run in question order.
	QueryResults(ctx context.Context, runID string) ([]ResultRecord, error)

	// QueryAttempts returns the attempts of a run in sequence order.
	QueryAttempts(ctx context.Context, runID string) ([]AttemptRecord, error)

	// AttemptStats totals the attempts of a run.
	AttemptStats(ctx context.Context, runID string) (AttemptStats, error)

	// Reset deletes every event and restarts the sequence.
	Reset(ctx context.Context) error
}
