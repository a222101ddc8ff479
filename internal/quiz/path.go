package quiz

import (
	"slices"
	"strings"

	"github.com/abhisek/pathquiz/internal/jsontree"
)

// PathBuilder accumulates keys picked one at a time into a dotted path.
type PathBuilder struct {
	keys []string
}

// Add appends a key.
func (p *PathBuilder) Add(key string) {
	p.keys = append(p.keys, key)
}

// RemoveLast drops the most recently added key, if any.
func (p *PathBuilder) RemoveLast() {
	if len(p.keys) > 0 {
		p.keys = p.keys[:len(p.keys)-1]
	}
}

// Clear drops every key.
func (p *PathBuilder) Clear() {
	p.keys = nil
}

// Set replaces the keys by splitting a dotted path. An empty path clears.
func (p *PathBuilder) Set(path string) {
	if path == "" {
		p.keys = nil
		return
	}
	p.keys = strings.Split(path, jsontree.PathSeparator)
}

// Keys returns the picked keys in order.
func (p *PathBuilder) Keys() []string {
	return slices.Clone(p.keys)
}

// Len returns the number of picked keys.
func (p *PathBuilder) Len() int {
	return len(p.keys)
}

// String returns the dotted path submitted to the verifier.
func (p *PathBuilder) String() string {
	return strings.Join(p.keys, jsontree.PathSeparator)
}

// Display returns the path for humans, e.g. "a > b".
func (p *PathBuilder) Display() string {
	return strings.Join(p.keys, " > ")
}
