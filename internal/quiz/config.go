package quiz

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/pathquiz/internal/vocab"
)

// Defaults for a standard run.
const (
	DefaultTotalQuestions = 30
	DefaultMaxDepth       = 2
	DefaultMaxRegenerate  = 10
)

// Config controls the size and shape of a quiz run.
type Config struct {
	// TotalQuestions is the number of questions in the run.
	TotalQuestions int

	// MaxDepth bounds the nesting of generated trees.
	MaxDepth int

	// Vocabulary is the word pool keys and values are drawn from.
	Vocabulary []string

	// MaxRegenerate is how many extra trees are generated for one question
	// when a tree comes out without a target leaf.
	MaxRegenerate int
}

// DefaultConfig returns the standard 30 question configuration.
func DefaultConfig() Config {
	return Config{
		TotalQuestions: DefaultTotalQuestions,
		MaxDepth:       DefaultMaxDepth,
		Vocabulary:     vocab.Words(),
		MaxRegenerate:  DefaultMaxRegenerate,
	}
}

// Validate checks the numeric bounds. The vocabulary is checked by the generator.
func (c Config) Validate() error {
	if c.TotalQuestions < 1 {
		return fmt.Errorf("total questions must be at least 1, got %d", c.TotalQuestions)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.MaxRegenerate < 0 {
		return fmt.Errorf("max regenerate must not be negative, got %d", c.MaxRegenerate)
	}
	return nil
}

// NewRand returns the PCG generator for seed. Runs with the same seed and
// config ask the same questions.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSeed draws a fresh seed for runs started without one.
func RandomSeed() uint64 {
	return rand.Uint64() >> 1
}
