package quiz

import (
	"math/rand/v2"

	"github.com/abhisek/pathquiz/internal/jsontree"
)

// ModeBalancer hands out render modes so that a run of total questions is
// split evenly: total-total/2 indented and total/2 compact.
type ModeBalancer struct {
	rng      *rand.Rand
	indented int
	compact  int
}

// NewModeBalancer creates a balancer for total questions.
func NewModeBalancer(total int, rng *rand.Rand) *ModeBalancer {
	return &ModeBalancer{
		rng:      rng,
		indented: total - total/2,
		compact:  total / 2,
	}
}

// Next picks a mode with quota left, at random while both have quota.
// Once both quotas are spent it keeps returning ModeIndented.
func (b *ModeBalancer) Next() jsontree.Mode {
	switch {
	case b.indented > 0 && b.compact > 0:
		if b.rng.IntN(2) == 0 {
			b.indented--
			return jsontree.ModeIndented
		}
		b.compact--
		return jsontree.ModeCompact
	case b.compact > 0:
		b.compact--
		return jsontree.ModeCompact
	default:
		if b.indented > 0 {
			b.indented--
		}
		return jsontree.ModeIndented
	}
}

// Remaining returns the quota left for mode.
func (b *ModeBalancer) Remaining(mode jsontree.Mode) int {
	if mode == jsontree.ModeCompact {
		return b.compact
	}
	return b.indented
}
