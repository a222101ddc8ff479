package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/google/uuid"

	"github.com/abhisek/pathquiz/internal/export"
	"github.com/abhisek/pathquiz/internal/logger"
	qz "github.com/abhisek/pathquiz/internal/quiz"
	"github.com/abhisek/pathquiz/internal/router"
	"github.com/abhisek/pathquiz/internal/screen"
	"github.com/abhisek/pathquiz/internal/screens/summary"
	"github.com/abhisek/pathquiz/internal/store"
	"github.com/abhisek/pathquiz/internal/ui/components"
	"github.com/abhisek/pathquiz/internal/ui/layout"
)

const feedbackDelay = 1500 * time.Millisecond

type focusArea int

const (
	focusGrid focusArea = iota
	focusInput
)

type feedbackKind int

const (
	feedbackNone feedbackKind = iota
	feedbackCorrect
	feedbackIncorrect
)

// Options configures one run of the quiz screen.
type Options struct {
	Config qz.Config

	// Seed drives every random choice of the run. Zero picks a random seed.
	Seed uint64

	// ExportPath is where results are written when the run completes.
	ExportPath string

	// EventRepo records the run. Nil disables persistence.
	EventRepo store.EventRepo

	Logger *logger.Logger

	// Clock replaces time.Now for question timing.
	Clock func() time.Time
}

// QuizScreen implements screen.Screen for an active run.
type QuizScreen struct {
	opts  Options
	log   *logger.Logger
	quiz  *qz.Quiz
	runID string

	question *qz.Question
	path     qz.PathBuilder
	input    components.PathInput
	grid     components.KeyGrid
	tree     viewport.Model
	focus    focusArea

	feedback    feedbackKind
	feedbackID  int
	confirmQuit bool
	elapsed     time.Duration
	ended       bool
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New creates a QuizScreen. The run starts in Init.
func New(opts Options) *QuizScreen {
	if opts.Seed == 0 {
		opts.Seed = qz.RandomSeed()
	}
	if opts.ExportPath == "" {
		opts.ExportPath = export.DefaultFileName
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &QuizScreen{
		opts:  opts,
		log:   log,
		input: components.NewPathInput("type a dotted path, e.g. a.b", 256),
		tree:  viewport.New(viewport.WithWidth(40), viewport.WithHeight(10)),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	q, err := qz.New(s.opts.Config, qz.NewRand(s.opts.Seed), qz.WithClock(s.opts.Clock))
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.quiz = q
	s.runID = uuid.New().String()
	s.log = s.log.With("run_id", s.runID)
	s.log.Info("run started",
		"questions", s.opts.Config.TotalQuestions,
		"max_depth", s.opts.Config.MaxDepth,
		"seed", s.opts.Seed)

	if s.opts.EventRepo != nil {
		s.persist("run start", s.opts.EventRepo.AppendRunEvent(context.Background(), store.RunEventData{
			RunID:          s.runID,
			Action:         store.ActionStart,
			TotalQuestions: s.opts.Config.TotalQuestions,
			MaxDepth:       s.opts.Config.MaxDepth,
			Seed:           int64(s.opts.Seed),
		}))
	}

	if err := s.nextQuestion(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return tickCmd()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// Status returns the question counter for the header.
func (s *QuizScreen) Status() string {
	if s.quiz == nil || s.question == nil {
		return ""
	}
	return fmt.Sprintf("Q %d/%d", s.question.Index, s.quiz.Total())
}

// HandlesEscape reports true so that Esc asks before leaving a run.
func (s *QuizScreen) HandlesEscape() bool {
	return s.errMsg == "" && !s.ended
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.feedback != feedbackNone:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.focus == focusInput:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Tab", Description: "Keys"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Move"},
		{Key: "Enter", Description: "Add key"},
		{Key: "⌫", Description: "Remove last"},
		{Key: "c", Description: "Clear"},
		{Key: "s", Description: "Submit"},
		{Key: "Tab", Description: "Type"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if s.ended || s.quiz == nil {
			return s, nil
		}
		s.elapsed = s.quiz.Elapsed()
		return s, tickCmd()

	case feedbackDoneMsg:
		if msg.id != s.feedbackID || s.feedback == feedbackNone {
			return s, nil
		}
		return s.handleFeedbackDone()

	case runEndMsg:
		return s.handleRunEnd(msg.completed)

	case components.KeyPickedMsg:
		if s.feedback != feedbackNone || s.confirmQuit {
			return s, nil
		}
		s.path.Add(msg.Key)
		s.input.SetValue(s.path.String())
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.question == nil || s.ended {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, func() tea.Msg { return runEndMsg{completed: false} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	// Feedback overlay: any key dismisses.
	if s.feedback != feedbackNone {
		return s.handleFeedbackDone()
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "tab":
		return s, s.toggleFocus()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		s.tree, cmd = s.tree.Update(msg)
		return s, cmd
	}

	if s.focus == focusInput {
		if key == "enter" {
			return s.submit()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		s.path.Set(s.input.Value())
		return s, cmd
	}

	switch key {
	case "backspace":
		s.path.RemoveLast()
		s.input.SetValue(s.path.String())
		return s, nil
	case "c":
		s.clearPath()
		return s, nil
	case "s":
		return s.submit()
	}
	var cmd tea.Cmd
	s.grid, cmd = s.grid.Update(msg)
	return s, cmd
}

func (s *QuizScreen) toggleFocus() tea.Cmd {
	if s.focus == focusGrid {
		s.focus = focusInput
		s.grid.Focused = false
		return s.input.Focus()
	}
	s.focus = focusGrid
	s.grid.Focused = true
	s.input.Blur()
	return nil
}

func (s *QuizScreen) clearPath() {
	s.path.Clear()
	s.input.Reset()
}

// submit verifies the built path against the current question.
func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	// An empty path is still an attempt, and always an incorrect one.
	candidate := s.path.String()
	q := s.question

	sub, err := s.quiz.Submit(candidate)
	if err != nil {
		s.log.Error("submit failed", "question", q.Index, "error", err)
		return s, nil
	}
	s.log.Debug("path submitted",
		"question", q.Index,
		"path", candidate,
		"correct", sub.Correct,
		"attempts", sub.Attempts)

	if s.opts.EventRepo != nil {
		ctx := context.Background()
		s.persist("attempt", s.opts.EventRepo.AppendAttemptEvent(ctx, store.AttemptEventData{
			RunID:         s.runID,
			Question:      q.Index,
			Mode:          q.Mode.String(),
			TargetPath:    q.Tree.TargetPath,
			TargetValue:   q.Tree.TargetValue,
			SubmittedPath: candidate,
			Correct:       sub.Correct,
			ElapsedMs:     sub.Elapsed.Milliseconds(),
		}))
		if r := sub.Result; r != nil {
			s.persist("result", s.opts.EventRepo.AppendResultEvent(ctx, store.ResultEventData{
				RunID:       s.runID,
				Question:    r.Question,
				CorrectPath: r.CorrectPath,
				UserPath:    r.UserPath,
				Attempts:    r.Attempts,
				ElapsedMs:   r.Elapsed.Milliseconds(),
				Mode:        r.Mode.String(),
			}))
		}
	}

	if sub.Correct {
		s.feedback = feedbackCorrect
	} else {
		s.feedback = feedbackIncorrect
		s.clearPath()
	}
	s.input.Submit(sub.Correct)
	s.feedbackID++
	id := s.feedbackID
	return s, tea.Tick(feedbackDelay, func(time.Time) tea.Msg {
		return feedbackDoneMsg{id: id}
	})
}

func (s *QuizScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	kind := s.feedback
	s.feedback = feedbackNone
	if kind != feedbackCorrect {
		return s, nil
	}

	if s.quiz.Done() {
		return s, func() tea.Msg { return runEndMsg{completed: true} }
	}
	if err := s.nextQuestion(); err != nil {
		s.errMsg = err.Error()
	}
	return s, nil
}

// nextQuestion loads the next question and resets the path widgets.
func (s *QuizScreen) nextQuestion() error {
	q, err := s.quiz.Next()
	if err != nil {
		return fmt.Errorf("next question: %w", err)
	}
	s.question = q
	s.elapsed = 0
	s.clearPath()

	s.tree.SetContent(highlightTree(q.Rendered))
	s.tree.GotoTop()

	s.grid = components.NewKeyGrid(q.Keys, components.ColumnsFor(q.Keys, 72))
	s.focus = focusGrid
	s.grid.Focused = true
	s.input.Blur()
	return nil
}

func (s *QuizScreen) handleRunEnd(completed bool) (screen.Screen, tea.Cmd) {
	if s.ended {
		return s, nil
	}
	s.ended = true
	results := s.quiz.Results()

	var exportErr error
	exportPath := ""
	if completed {
		exportPath = s.opts.ExportPath
		if exportErr = export.WriteXLSX(exportPath, results); exportErr != nil {
			s.log.Error("export failed", "path", exportPath, "error", exportErr)
		} else {
			s.log.Info("results exported", "path", exportPath, "rows", len(results))
		}
	}

	duration := s.quiz.Now().Sub(s.quiz.StartedAt())
	if s.opts.EventRepo != nil {
		data := store.RunEventData{
			RunID:          s.runID,
			Action:         store.ActionEnd,
			TotalQuestions: s.quiz.Total(),
			MaxDepth:       s.opts.Config.MaxDepth,
			Seed:           int64(s.opts.Seed),
			Completed:      len(results),
			DurationSecs:   duration.Seconds(),
			ExportPath:     exportPath,
		}
		if exportErr != nil {
			data.ExportError = exportErr.Error()
		}
		s.persist("run end", s.opts.EventRepo.AppendRunEvent(context.Background(), data))
	}
	s.log.Info("run ended", "completed", completed, "answered", len(results), "duration", duration)

	if !completed {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	sum := qz.BuildSummary(results)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum, exportPath, exportErr)}
	}
}

// persist logs a failed best-effort store write. The quiz never blocks on it.
func (s *QuizScreen) persist(what string, err error) {
	if err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn("persist event failed", "event", what, "error", err)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
