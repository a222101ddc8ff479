package jsontree

import (
	"fmt"
	"strings"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Mode selects how a tree is rendered for display.
type Mode int

const (
	// ModeIndented renders canonical JSON with four-space indentation.
	ModeIndented Mode = iota

	// ModeCompact renders one key or brace per line without indentation.
	ModeCompact
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIndented:
		return "indented"
	case ModeCompact:
		return "compact"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "indented", "indent":
		return ModeIndented, nil
	case "compact", "unindented":
		return ModeCompact, nil
	default:
		return 0, fmt.Errorf("unknown render mode %q: must be indented or compact", s)
	}
}

var indentOptions = &pretty.Options{Width: 80, Indent: "    ", SortKeys: false}

// Render renders the tree's root in the given mode.
func Render(t *Tree, mode Mode) string {
	return RenderBranch(t.Root, mode)
}

// RenderBranch renders a branch in the given mode.
func RenderBranch(b *Branch, mode Mode) string {
	if mode == ModeCompact {
		var lines []string
		lines = appendCompact(lines, b)
		return strings.Join(lines, "\n")
	}
	return renderIndented(b)
}

func renderIndented(b *Branch) string {
	doc, err := marshalBranch(b)
	if err != nil {
		// Keys are validated on the way in; fall back to the compact form
		// rather than showing nothing.
		return RenderBranch(b, ModeCompact)
	}
	return strings.TrimRight(string(pretty.PrettyOptions([]byte(doc), indentOptions)), "\n")
}

// marshalBranch builds the compact JSON text of b, keeping key order.
func marshalBranch(b *Branch) (string, error) {
	doc := "{}"
	for k, child := range b.All() {
		var err error
		switch n := child.(type) {
		case *Leaf:
			doc, err = sjson.Set(doc, escapeKey(k), n.Value)
		case *Branch:
			var raw string
			raw, err = marshalBranch(n)
			if err == nil {
				doc, err = sjson.SetRaw(doc, escapeKey(k), raw)
			}
		}
		if err != nil {
			return "", fmt.Errorf("set %q: %w", k, err)
		}
	}
	return doc, nil
}

// escapeKey turns a key into a single sjson path component that is always
// treated as an object key.
func escapeKey(k string) string {
	r := strings.NewReplacer(`\`, `\\`, `.`, `\.`)
	return ":" + r.Replace(k)
}

func appendCompact(lines []string, b *Branch) []string {
	lines = append(lines, "{")
	for k, child := range b.All() {
		switch n := child.(type) {
		case *Leaf:
			lines = append(lines, fmt.Sprintf("%q: %q", k, n.Value))
		case *Branch:
			lines = append(lines, fmt.Sprintf("%q:", k))
			lines = appendCompact(lines, n)
		}
	}
	return append(lines, "}")
}
