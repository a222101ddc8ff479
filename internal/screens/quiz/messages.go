package quiz

import "time"

// timerTickMsg is sent every second to refresh the elapsed time.
type timerTickMsg time.Time

// feedbackDoneMsg ends the feedback overlay it was scheduled for. Overlays
// dismissed early by a key press leave a stale message behind, which id
// filters out.
type feedbackDoneMsg struct {
	id int
}

// runEndMsg is sent to trigger the end of the run, completed or quit.
type runEndMsg struct {
	completed bool
}
