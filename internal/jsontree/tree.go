package jsontree

import (
	"slices"
	"strings"
)

// PathSeparator joins keys in a dotted path.
const PathSeparator = "."

// Tree is a generated question: the root branch and the target leaf the user
// must locate. Target fields are fixed at generation time.
type Tree struct {
	Root *Branch

	// TargetPath is the dotted key path from the root to the target.
	TargetPath string

	// TargetValue is the value of the target leaf. Empty when HasTarget is false.
	TargetValue string

	// HasTarget is false when target selection stopped at an empty branch.
	HasTarget bool
}

// Resolve walks the dotted path from the root and returns the node it names.
func (t *Tree) Resolve(path string) (Node, bool) {
	if t == nil || t.Root == nil {
		return nil, false
	}
	var cur Node = t.Root
	for _, tok := range strings.Split(path, PathSeparator) {
		b, ok := cur.(*Branch)
		if !ok {
			return nil, false
		}
		next, ok := b.Get(tok)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Verify reports whether candidate is the target path. See Verify.
func (t *Tree) Verify(candidate string) bool {
	return Verify(t, candidate)
}

// Keys returns every key in the tree, sorted.
func (t *Tree) Keys() []string {
	if t == nil || t.Root == nil {
		return nil
	}
	var keys []string
	walk(t.Root, nil, func(path []string, _ Node) {
		keys = append(keys, path[len(path)-1])
	})
	slices.Sort(keys)
	return keys
}

// Values returns every leaf value in the tree in depth-first order.
func (t *Tree) Values() []string {
	if t == nil || t.Root == nil {
		return nil
	}
	var values []string
	walk(t.Root, nil, func(_ []string, n Node) {
		if l, ok := n.(*Leaf); ok {
			values = append(values, l.Value)
		}
	})
	return values
}

// LeafPaths returns the dotted path of every leaf in depth-first order.
func LeafPaths(root *Branch) []string {
	var paths []string
	walk(root, nil, func(path []string, n Node) {
		if _, ok := n.(*Leaf); ok {
			paths = append(paths, strings.Join(path, PathSeparator))
		}
	})
	return paths
}

// Depth returns the number of branch levels, counting the root.
func Depth(b *Branch) int {
	deepest := 0
	for _, child := range b.All() {
		if cb, ok := child.(*Branch); ok {
			deepest = max(deepest, Depth(cb))
		}
	}
	return deepest + 1
}
