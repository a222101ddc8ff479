package jsontree

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

const (
	// MinVocabulary is the smallest number of distinct words a generator accepts.
	MinVocabulary = 3

	// MaxFieldsPerBranch is the upper bound of the per-branch field count.
	MaxFieldsPerBranch = 3
)

var (
	ErrVocabularyTooSmall = errors.New("vocabulary too small")
	ErrInvalidDepth       = errors.New("max depth must be at least 1")
)

// Generator builds random trees from a fixed vocabulary.
type Generator struct {
	vocabulary []string
	maxDepth   int
	rng        *rand.Rand
}

// NewGenerator validates the vocabulary and depth and returns a Generator
// drawing from rng. Duplicate and blank words are dropped.
func NewGenerator(vocabulary []string, maxDepth int, rng *rand.Rand) (*Generator, error) {
	if maxDepth < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, maxDepth)
	}
	words := dedupe(vocabulary)
	if len(words) < MinVocabulary {
		return nil, fmt.Errorf("%w: %d distinct words, need %d", ErrVocabularyTooSmall, len(words), MinVocabulary)
	}
	if rng == nil {
		return nil, errors.New("random source is required")
	}
	return &Generator{vocabulary: words, maxDepth: maxDepth, rng: rng}, nil
}

// MaxDepth returns the configured depth budget.
func (g *Generator) MaxDepth() int {
	return g.maxDepth
}

// Generate builds a fresh tree and picks its target.
func (g *Generator) Generate() *Tree {
	b := newBuilder(g.rng, g.vocabulary)
	root := b.build(g.maxDepth)
	return newTree(root, g.rng)
}

// builder owns the word pool for one tree. Every word leaves the pool the
// first time it is used, as a key or as a value, which keeps keys and values
// unique across the whole tree and disjoint from each other.
type builder struct {
	rng  *rand.Rand
	pool []string
}

func newBuilder(rng *rand.Rand, pool []string) *builder {
	return &builder{rng: rng, pool: slices.Clone(pool)}
}

// take removes and returns a uniformly random word from the pool.
func (b *builder) take() (string, bool) {
	if len(b.pool) == 0 {
		return "", false
	}
	i := b.rng.IntN(len(b.pool))
	w := b.pool[i]
	b.pool = slices.Delete(b.pool, i, i+1)
	return w, true
}

func (b *builder) build(depth int) *Branch {
	branch := NewBranch()
	fields := 1 + b.rng.IntN(MaxFieldsPerBranch)

	for added := 0; added < fields && len(b.pool) > 0; added++ {
		key, _ := b.take()

		if depth > 1 && b.rng.Float64() < 0.5 {
			branch.Set(key, b.build(depth-1))
			continue
		}

		// An exhausted pool leaves the key consumed but the field out of the tree.
		value, ok := b.take()
		if !ok {
			continue
		}
		branch.Set(key, &Leaf{Value: value})
	}
	return branch
}

// newTree picks the target by descending through random keys until a leaf
// or an empty branch is reached.
func newTree(root *Branch, rng *rand.Rand) *Tree {
	t := &Tree{Root: root}

	var path []string
	cur := root
	for cur.Len() > 0 {
		keys := cur.Keys()
		key := keys[rng.IntN(len(keys))]
		path = append(path, key)

		child, _ := cur.Get(key)
		if leaf, ok := child.(*Leaf); ok {
			t.TargetValue = leaf.Value
			t.HasTarget = true
			break
		}
		cur = child.(*Branch)
	}

	t.TargetPath = strings.Join(path, PathSeparator)
	return t
}

func dedupe(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
