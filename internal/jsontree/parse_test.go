package jsontree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DetectsMode(t *testing.T) {
	tree := scenarioTree()

	b, mode, err := Parse(Render(tree, ModeIndented))
	require.NoError(t, err)
	assert.Equal(t, ModeIndented, mode)
	assert.True(t, Equal(tree.Root, b))

	b, mode, err = Parse(Render(tree, ModeCompact))
	require.NoError(t, err)
	assert.Equal(t, ModeCompact, mode)
	assert.True(t, Equal(tree.Root, b))
}

func TestParseIndented_AcceptsAnyFormatting(t *testing.T) {
	b, err := ParseIndented(`{"alpha":"beta","gamma":{"delta":"epsilon"}}`)
	require.NoError(t, err)
	assert.True(t, Equal(scenarioTree().Root, b))
}

func TestParseIndented_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{"not json", `{"alpha": }`, ErrInvalidDocument},
		{"array", `["alpha"]`, ErrInvalidDocument},
		{"number value", `{"alpha": 1}`, ErrUnsupportedValue},
		{"null value", `{"alpha": {"beta": null}}`, ErrUnsupportedValue},
		{"dotted key", `{"al.pha": "beta"}`, ErrUnsupportedKey},
		{"empty key", `{"": "beta"}`, ErrUnsupportedKey},
		{"duplicate key", `{"alpha": "beta", "alpha": "gamma"}`, ErrDuplicateKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIndented(tt.in)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseCompact_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{"missing open brace", `"alpha": "beta"`, ErrInvalidDocument},
		{"unterminated", "{\n\"alpha\": \"beta\"", ErrInvalidDocument},
		{"trailing content", "{\n}\n}", ErrInvalidDocument},
		{"unquoted key", "{\nalpha: \"beta\"\n}", ErrInvalidDocument},
		{"unquoted value", "{\n\"alpha\": beta\n}", ErrInvalidDocument},
		{"nested without brace", "{\n\"alpha\":\n\"beta\": \"gamma\"\n}", ErrInvalidDocument},
		{"missing colon", "{\n\"alpha\" \"beta\"\n}", ErrInvalidDocument},
		{"unterminated key", "{\n\"alpha: beta\n}", ErrInvalidDocument},
		{"colon inside key only", "{\n\"alpha:\" \"beta\"\n}", ErrInvalidDocument},
		{"dotted key", "{\n\"al.pha\": \"beta\"\n}", ErrUnsupportedKey},
		{"duplicate key", "{\n\"alpha\": \"beta\"\n\"alpha\": \"gamma\"\n}", ErrDuplicateKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCompact(tt.in)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseCompact_IgnoresIndentationAndBlankLines(t *testing.T) {
	in := "{\n  \"alpha\": \"beta\"\n\n  \"gamma\":\n  {\n    \"delta\": \"epsilon\"\n  }\n}\n"
	b, err := ParseCompact(in)
	require.NoError(t, err)
	assert.True(t, Equal(scenarioTree().Root, b))
}

func TestValidKey(t *testing.T) {
	assert.True(t, ValidKey("alpha"))
	assert.True(t, ValidKey("snake_case-key"))
	for _, k := range []string{"", "a.b", "a|b", "a#b", "a@b", "a*b", "a?b", `a\b`} {
		assert.False(t, ValidKey(k), k)
	}
}
