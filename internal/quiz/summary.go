package quiz

import (
	"time"

	"github.com/abhisek/pathquiz/internal/jsontree"
)

// Summary holds the totals shown when a run ends.
type Summary struct {
	Questions     int
	TotalAttempts int

	// FirstTry counts questions answered on the first attempt.
	FirstTry int

	// Accuracy is questions over attempts, 0 when nothing was attempted.
	Accuracy float64

	TotalTime   time.Duration
	AverageTime time.Duration

	Indented int
	Compact  int

	Results []Result
}

// BuildSummary totals a list of results.
func BuildSummary(results []Result) *Summary {
	s := &Summary{Questions: len(results), Results: results}
	for _, r := range results {
		s.TotalAttempts += r.Attempts
		s.TotalTime += r.Elapsed
		if r.Attempts == 1 {
			s.FirstTry++
		}
		if r.Mode == jsontree.ModeCompact {
			s.Compact++
		} else {
			s.Indented++
		}
	}
	if s.TotalAttempts > 0 {
		s.Accuracy = float64(s.Questions) / float64(s.TotalAttempts)
	}
	if s.Questions > 0 {
		s.AverageTime = s.TotalTime / time.Duration(s.Questions)
	}
	return s
}
