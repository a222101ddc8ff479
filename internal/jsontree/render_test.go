package jsontree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathquiz/internal/vocab"
)

func TestRender_Indented(t *testing.T) {
	want := strings.Join([]string{
		`{`,
		`    "alpha": "beta",`,
		`    "gamma": {`,
		`        "delta": "epsilon"`,
		`    }`,
		`}`,
	}, "\n")
	assert.Equal(t, want, Render(scenarioTree(), ModeIndented))
}

func TestRender_Compact(t *testing.T) {
	want := strings.Join([]string{
		`{`,
		`"alpha": "beta"`,
		`"gamma":`,
		`{`,
		`"delta": "epsilon"`,
		`}`,
		`}`,
	}, "\n")
	assert.Equal(t, want, Render(scenarioTree(), ModeCompact))
}

func TestRender_EmptyBranch(t *testing.T) {
	assert.Equal(t, "{}", RenderBranch(NewBranch(), ModeIndented))
	assert.Equal(t, "{\n}", RenderBranch(NewBranch(), ModeCompact))
}

func TestRender_KeepsInsertionOrder(t *testing.T) {
	root := NewBranch()
	root.Set("zulu", &Leaf{Value: "one"})
	root.Set("alpha", &Leaf{Value: "two"})

	out := RenderBranch(root, ModeIndented)
	assert.Less(t, strings.Index(out, "zulu"), strings.Index(out, "alpha"))
}

func TestRender_Deterministic(t *testing.T) {
	g, err := NewGenerator(vocab.Words(), 2, seeded(11))
	require.NoError(t, err)
	tree := g.Generate()

	for _, mode := range []Mode{ModeIndented, ModeCompact} {
		assert.Equal(t, Render(tree, mode), Render(tree, mode))
	}
}

func TestRender_RoundTrip(t *testing.T) {
	for seed := uint64(0); seed < 100; seed++ {
		g, err := NewGenerator(vocab.Words(), 3, seeded(seed))
		require.NoError(t, err)
		tree := g.Generate()

		indented, err := ParseIndented(Render(tree, ModeIndented))
		require.NoError(t, err, "seed %d", seed)
		assert.True(t, Equal(tree.Root, indented), "seed %d: indented", seed)

		compact, err := ParseCompact(Render(tree, ModeCompact))
		require.NoError(t, err, "seed %d", seed)
		assert.True(t, Equal(tree.Root, compact), "seed %d: compact", seed)
	}
}

func TestRender_QuotesAwkwardValues(t *testing.T) {
	root := NewBranch()
	root.Set("quote", &Leaf{Value: `say "hi"`})
	root.Set("slash", &Leaf{Value: `back\slash`})
	root.Set(":lead", &Leaf{Value: "colon"})
	root.Set(`a":b`, &Leaf{Value: `x": "y`})
	root.Set(`q"k`, &Leaf{Value: "{"})
	nested := NewBranch()
	nested.Set(`":`, &Leaf{Value: "}"})
	root.Set("a:b", nested)

	for _, mode := range []Mode{ModeIndented, ModeCompact} {
		b, err := parseAs(RenderBranch(root, mode), mode)
		require.NoError(t, err, mode.String())
		assert.True(t, Equal(root, b), mode.String())
	}
}

func parseAs(text string, mode Mode) (*Branch, error) {
	if mode == ModeCompact {
		return ParseCompact(text)
	}
	return ParseIndented(text)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"indented", ModeIndented, false},
		{"Indent", ModeIndented, false},
		{"compact", ModeCompact, false},
		{" unindented ", ModeCompact, false},
		{"pretty", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, mustParseMode(t, got.String()))
		})
	}
}

func mustParseMode(t *testing.T, s string) Mode {
	t.Helper()
	m, err := ParseMode(s)
	require.NoError(t, err)
	return m
}
