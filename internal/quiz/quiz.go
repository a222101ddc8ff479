// Package quiz runs a sequence of path questions over generated trees,
// counting attempts and timing each question until it is answered.
package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/abhisek/pathquiz/internal/jsontree"
)

// Messages shown after a submission.
const (
	CorrectMessage   = "Correct path! Moving to the next question..."
	IncorrectMessage = "Incorrect path. Please try again."
)

var (
	// ErrComplete is returned by Next once every question has been answered.
	ErrComplete = errors.New("quiz complete")

	// ErrNoQuestion is returned by Submit when no question is awaiting an answer.
	ErrNoQuestion = errors.New("no question in progress")

	// ErrQuestionPending is returned by Next while the current question is unanswered.
	ErrQuestionPending = errors.New("current question not answered")

	// ErrNoTarget is returned when every regenerated tree lacked a target leaf.
	ErrNoTarget = errors.New("could not generate a tree with a target")
)

// Question is one generated tree presented to the user.
type Question struct {
	// Index is 1-based.
	Index int

	Tree     *jsontree.Tree
	Mode     jsontree.Mode
	Rendered string

	// Keys lists every key in the tree, sorted, for key pickers.
	Keys []string

	// Attempts counts submissions so far.
	Attempts  int
	StartedAt time.Time
}

// Result is the immutable record of a completed question.
type Result struct {
	Question    int
	CorrectPath string
	UserPath    string
	Attempts    int
	Elapsed     time.Duration
	Mode        jsontree.Mode
}

// Seconds returns the elapsed time in seconds.
func (r Result) Seconds() float64 {
	return r.Elapsed.Seconds()
}

// Submission is the outcome of one Submit call.
type Submission struct {
	Correct  bool
	Attempts int
	Elapsed  time.Duration

	// Result is set when Correct is true.
	Result *Result
}

// Option customizes a Quiz.
type Option func(*Quiz)

// WithClock replaces time.Now as the source of question timestamps.
func WithClock(now func() time.Time) Option {
	return func(q *Quiz) {
		q.now = now
	}
}

// Quiz is the question lifecycle for one run. It is not safe for concurrent use.
type Quiz struct {
	cfg       Config
	gen       *jsontree.Generator
	balancer  *ModeBalancer
	now       func() time.Time
	current   *Question
	asked     int
	results   []Result
	startedAt time.Time
}

// New validates cfg and creates a quiz drawing all randomness from rng.
func New(cfg Config, rng *rand.Rand, opts ...Option) (*Quiz, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid quiz config: %w", err)
	}
	gen, err := jsontree.NewGenerator(cfg.Vocabulary, cfg.MaxDepth, rng)
	if err != nil {
		return nil, fmt.Errorf("create generator: %w", err)
	}
	q := &Quiz{
		cfg:      cfg,
		gen:      gen,
		balancer: NewModeBalancer(cfg.TotalQuestions, rng),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.startedAt = q.now()
	return q, nil
}

// Next generates, renders and starts the next question.
func (q *Quiz) Next() (*Question, error) {
	if q.current != nil {
		return nil, ErrQuestionPending
	}
	if q.asked >= q.cfg.TotalQuestions {
		return nil, ErrComplete
	}

	tree, err := q.generate()
	if err != nil {
		return nil, err
	}

	mode := q.balancer.Next()
	q.asked++
	q.current = &Question{
		Index:     q.asked,
		Tree:      tree,
		Mode:      mode,
		Rendered:  jsontree.Render(tree, mode),
		Keys:      tree.Keys(),
		StartedAt: q.now(),
	}
	return q.current, nil
}

func (q *Quiz) generate() (*jsontree.Tree, error) {
	for range q.cfg.MaxRegenerate + 1 {
		if t := q.gen.Generate(); t.HasTarget {
			return t, nil
		}
	}
	return nil, fmt.Errorf("question %d: %w after %d tries", q.asked+1, ErrNoTarget, q.cfg.MaxRegenerate+1)
}

// Submit checks path against the current question. A correct path records
// a Result and ends the question; an incorrect one leaves it open.
func (q *Quiz) Submit(path string) (Submission, error) {
	cur := q.current
	if cur == nil {
		return Submission{}, ErrNoQuestion
	}

	cur.Attempts++
	elapsed := q.now().Sub(cur.StartedAt)
	sub := Submission{
		Correct:  jsontree.Verify(cur.Tree, path),
		Attempts: cur.Attempts,
		Elapsed:  elapsed,
	}
	if !sub.Correct {
		return sub, nil
	}

	r := Result{
		Question:    cur.Index,
		CorrectPath: cur.Tree.TargetPath,
		UserPath:    path,
		Attempts:    cur.Attempts,
		Elapsed:     elapsed,
		Mode:        cur.Mode,
	}
	q.results = append(q.results, r)
	q.current = nil
	sub.Result = &r
	return sub, nil
}

// Current returns the question awaiting an answer, or nil.
func (q *Quiz) Current() *Question {
	return q.current
}

// Elapsed returns how long the current question has been open.
func (q *Quiz) Elapsed() time.Duration {
	if q.current == nil {
		return 0
	}
	return q.now().Sub(q.current.StartedAt)
}

// Total returns the configured number of questions.
func (q *Quiz) Total() int {
	return q.cfg.TotalQuestions
}

// Answered returns the number of completed questions.
func (q *Quiz) Answered() int {
	return len(q.results)
}

// Done reports whether every question has been answered.
func (q *Quiz) Done() bool {
	return len(q.results) >= q.cfg.TotalQuestions
}

// Results returns the completed records in question order.
func (q *Quiz) Results() []Result {
	return slices.Clone(q.results)
}

// StartedAt returns when the run was created.
func (q *Quiz) StartedAt() time.Time {
	return q.startedAt
}

// Now returns the quiz clock's current time.
func (q *Quiz) Now() time.Time {
	return q.now()
}
