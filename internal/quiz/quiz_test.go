package quiz

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathquiz/internal/jsontree"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestQuiz(t *testing.T, cfg Config, seed uint64) (*Quiz, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	q, err := New(cfg, rand.New(rand.NewPCG(seed, seed)), WithClock(clock.Now))
	require.NoError(t, err)
	return q, clock
}

// wrongPath returns a leaf path that is not the target, or a path that
// cannot resolve when the tree has a single leaf.
func wrongPath(q *Question) string {
	for _, p := range jsontree.LeafPaths(q.Tree.Root) {
		if p != q.Tree.TargetPath {
			return p
		}
	}
	return q.Tree.TargetPath + ".missing"
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero questions", func(c *Config) { c.TotalQuestions = 0 }},
		{"zero depth", func(c *Config) { c.MaxDepth = 0 }},
		{"negative regenerate", func(c *Config) { c.MaxRegenerate = -1 }},
		{"tiny vocabulary", func(c *Config) { c.Vocabulary = []string{"a", "b"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := New(cfg, rand.New(rand.NewPCG(1, 1)))
			assert.Error(t, err)
		})
	}
}

func TestQuiz_FullRunBalancesModes(t *testing.T) {
	q, clock := newTestQuiz(t, DefaultConfig(), 42)

	counts := map[jsontree.Mode]int{}
	for i := 1; i <= DefaultTotalQuestions; i++ {
		question, err := q.Next()
		require.NoError(t, err)
		assert.Equal(t, i, question.Index)
		assert.True(t, question.Tree.HasTarget)
		assert.Equal(t, jsontree.Render(question.Tree, question.Mode), question.Rendered)
		assert.Equal(t, question.Tree.Keys(), question.Keys)
		counts[question.Mode]++

		clock.Advance(time.Second)
		sub, err := q.Submit(question.Tree.TargetPath)
		require.NoError(t, err)
		require.True(t, sub.Correct)
	}

	assert.Equal(t, 15, counts[jsontree.ModeIndented])
	assert.Equal(t, 15, counts[jsontree.ModeCompact])
	assert.True(t, q.Done())
	assert.Len(t, q.Results(), DefaultTotalQuestions)

	_, err := q.Next()
	assert.ErrorIs(t, err, ErrComplete)
}

func TestQuiz_AttemptsAndElapsed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalQuestions = 2
	q, clock := newTestQuiz(t, cfg, 7)

	first, err := q.Next()
	require.NoError(t, err)
	clock.Advance(2500 * time.Millisecond)
	sub, err := q.Submit(first.Tree.TargetPath)
	require.NoError(t, err)
	require.True(t, sub.Correct)
	require.NotNil(t, sub.Result)
	assert.Equal(t, 1, sub.Result.Attempts)
	assert.InDelta(t, 2.5, sub.Result.Seconds(), 1e-9)

	second, err := q.Next()
	require.NoError(t, err)

	clock.Advance(3 * time.Second)
	sub, err = q.Submit(wrongPath(second))
	require.NoError(t, err)
	assert.False(t, sub.Correct)
	assert.Nil(t, sub.Result)
	assert.Equal(t, 1, sub.Attempts)
	assert.Same(t, second, q.Current())

	clock.Advance(3 * time.Second)
	sub, err = q.Submit("")
	require.NoError(t, err)
	assert.False(t, sub.Correct)
	assert.Equal(t, 6*time.Second, q.Elapsed())

	clock.Advance(4 * time.Second)
	sub, err = q.Submit(second.Tree.TargetPath)
	require.NoError(t, err)
	require.True(t, sub.Correct)

	results := q.Results()
	require.Len(t, results, 2)
	assert.Equal(t, []int{1, 3}, []int{results[0].Attempts, results[1].Attempts})
	assert.Equal(t, []float64{2.5, 10.0}, []float64{results[0].Seconds(), results[1].Seconds()})
	assert.Equal(t, second.Tree.TargetPath, results[1].CorrectPath)
	assert.Equal(t, second.Tree.TargetPath, results[1].UserPath)
	assert.Equal(t, 2, results[1].Question)
	assert.Nil(t, q.Current())
	assert.Zero(t, q.Elapsed())
}

func TestQuiz_LifecycleErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalQuestions = 1
	q, _ := newTestQuiz(t, cfg, 3)

	_, err := q.Submit("anything")
	assert.ErrorIs(t, err, ErrNoQuestion)

	question, err := q.Next()
	require.NoError(t, err)

	_, err = q.Next()
	assert.ErrorIs(t, err, ErrQuestionPending)

	_, err = q.Submit(question.Tree.TargetPath)
	require.NoError(t, err)

	_, err = q.Submit(question.Tree.TargetPath)
	assert.ErrorIs(t, err, ErrNoQuestion)

	_, err = q.Next()
	assert.ErrorIs(t, err, ErrComplete)
}

func TestQuiz_ResultsAreCopies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalQuestions = 1
	q, _ := newTestQuiz(t, cfg, 5)

	question, err := q.Next()
	require.NoError(t, err)
	_, err = q.Submit(question.Tree.TargetPath)
	require.NoError(t, err)

	results := q.Results()
	results[0].Attempts = 99
	assert.Equal(t, 1, q.Results()[0].Attempts)
}

func TestQuiz_SameSeedSameQuestions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalQuestions = 5
	a, _ := newTestQuiz(t, cfg, 11)
	b, _ := newTestQuiz(t, cfg, 11)

	for range cfg.TotalQuestions {
		qa, err := a.Next()
		require.NoError(t, err)
		qb, err := b.Next()
		require.NoError(t, err)

		assert.Equal(t, qa.Rendered, qb.Rendered)
		assert.Equal(t, qa.Mode, qb.Mode)
		assert.Equal(t, qa.Tree.TargetPath, qb.Tree.TargetPath)

		_, err = a.Submit(qa.Tree.TargetPath)
		require.NoError(t, err)
		_, err = b.Submit(qb.Tree.TargetPath)
		require.NoError(t, err)
	}
}

func TestModeBalancer(t *testing.T) {
	tests := []struct {
		total    int
		indented int
		compact  int
	}{
		{30, 15, 15},
		{31, 16, 15},
		{1, 1, 0},
		{2, 1, 1},
	}
	for _, tt := range tests {
		for seed := uint64(0); seed < 20; seed++ {
			b := NewModeBalancer(tt.total, rand.New(rand.NewPCG(seed, 0)))
			got := map[jsontree.Mode]int{}
			for range tt.total {
				got[b.Next()]++
			}
			assert.Equal(t, tt.indented, got[jsontree.ModeIndented], "total %d seed %d", tt.total, seed)
			assert.Equal(t, tt.compact, got[jsontree.ModeCompact], "total %d seed %d", tt.total, seed)
			assert.Zero(t, b.Remaining(jsontree.ModeIndented))
			assert.Zero(t, b.Remaining(jsontree.ModeCompact))
		}
	}
}

func TestPathBuilder(t *testing.T) {
	var p PathBuilder
	assert.Equal(t, "", p.String())

	p.Add("gamma")
	p.Add("delta")
	assert.Equal(t, "gamma.delta", p.String())
	assert.Equal(t, "gamma > delta", p.Display())
	assert.Equal(t, 2, p.Len())

	p.RemoveLast()
	assert.Equal(t, "gamma", p.String())

	p.Clear()
	p.RemoveLast()
	assert.Equal(t, 0, p.Len())

	p.Set("a.b.c")
	assert.Equal(t, []string{"a", "b", "c"}, p.Keys())
	p.Set("")
	assert.Equal(t, "", p.String())
}

func TestBuildSummary(t *testing.T) {
	results := []Result{
		{Question: 1, Attempts: 1, Elapsed: 2500 * time.Millisecond, Mode: jsontree.ModeIndented},
		{Question: 2, Attempts: 3, Elapsed: 10 * time.Second, Mode: jsontree.ModeCompact},
	}
	s := BuildSummary(results)

	assert.Equal(t, 2, s.Questions)
	assert.Equal(t, 4, s.TotalAttempts)
	assert.Equal(t, 1, s.FirstTry)
	assert.InDelta(t, 0.5, s.Accuracy, 1e-9)
	assert.Equal(t, 12500*time.Millisecond, s.TotalTime)
	assert.Equal(t, 6250*time.Millisecond, s.AverageTime)
	assert.Equal(t, 1, s.Indented)
	assert.Equal(t, 1, s.Compact)

	empty := BuildSummary(nil)
	assert.Zero(t, empty.Accuracy)
	assert.Zero(t, empty.AverageTime)
}
