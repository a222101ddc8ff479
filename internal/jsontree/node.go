package jsontree

import (
	"iter"
	"slices"
)

// Node is either a *Leaf or a *Branch.
type Node interface {
	isNode()
}

// Leaf holds a single string value.
type Leaf struct {
	Value string
}

func (*Leaf) isNode() {}

// Branch holds named children in insertion order.
type Branch struct {
	keys     []string
	children map[string]Node
}

func (*Branch) isNode() {}

// NewBranch creates an empty branch.
func NewBranch() *Branch {
	return &Branch{children: make(map[string]Node)}
}

// Set assigns a child. New keys are appended; existing keys keep their position.
func (b *Branch) Set(key string, n Node) {
	if _, ok := b.children[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.children[key] = n
}

// Get returns the child stored under key.
func (b *Branch) Get(key string) (Node, bool) {
	n, ok := b.children[key]
	return n, ok
}

// Keys returns the branch keys in insertion order.
func (b *Branch) Keys() []string {
	return slices.Clone(b.keys)
}

// Len returns the number of children.
func (b *Branch) Len() int {
	return len(b.keys)
}

// All iterates over the children in insertion order.
func (b *Branch) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		for _, k := range b.keys {
			if !yield(k, b.children[k]) {
				return
			}
		}
	}
}

// Equal reports whether two nodes have the same shape, keys, key order and values.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *Leaf:
		y, ok := b.(*Leaf)
		return ok && x.Value == y.Value
	case *Branch:
		y, ok := b.(*Branch)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i, k := range x.keys {
			if y.keys[i] != k {
				return false
			}
			if !Equal(x.children[k], y.children[k]) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}

// walk visits every node below b depth-first, passing the key path to each.
func walk(b *Branch, prefix []string, fn func(path []string, n Node)) {
	for k, child := range b.All() {
		path := append(slices.Clone(prefix), k)
		fn(path, child)
		if cb, ok := child.(*Branch); ok {
			walk(cb, path, fn)
		}
	}
}
