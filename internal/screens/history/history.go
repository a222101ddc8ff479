package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathquiz/internal/router"
	"github.com/abhisek/pathquiz/internal/screen"
	"github.com/abhisek/pathquiz/internal/store"
	"github.com/abhisek/pathquiz/internal/ui/layout"
	"github.com/abhisek/pathquiz/internal/ui/theme"
)

// maxRuns bounds how many past runs are listed.
const maxRuns = 50

type historyLoadedMsg struct {
	Runs    []store.RunRecord
	Stats   map[string]store.AttemptStats
	Results map[string][]store.ResultRecord
	Err     error
}

// HistoryScreen lists past runs with their accuracy.
type HistoryScreen struct {
	eventRepo store.EventRepo
	runs      []store.RunRecord
	stats     map[string]store.AttemptStats
	results   map[string][]store.ResultRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		runs, err := repo.QueryRuns(ctx, store.QueryOpts{Limit: maxRuns})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		stats := make(map[string]store.AttemptStats, len(runs))
		results := make(map[string][]store.ResultRecord, len(runs))
		for _, r := range runs {
			st, err := repo.AttemptStats(ctx, r.RunID)
			if err != nil {
				return historyLoadedMsg{Err: err}
			}
			stats[r.RunID] = st

			rows, err := repo.QueryResults(ctx, r.RunID)
			if err != nil {
				return historyLoadedMsg{Err: err}
			}
			results[r.RunID] = rows
		}
		return historyLoadedMsg{Runs: runs, Stats: stats, Results: results}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.runs = msg.Runs
			s.stats = msg.Stats
			s.results = msg.Results
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.runs)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.runs) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No runs yet. Start a quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, run := range s.runs {
		st := s.stats[run.RunID]

		status := fmt.Sprintf("%d/%d answered", run.Completed, run.TotalQuestions)
		if !run.Finished {
			status = "unfinished"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %s  %3d attempts  %3.0f%% accuracy  %s",
			prefix,
			shortID(run.RunID),
			run.StartedAt.Local().Format("Jan 02, 2006 15:04"),
			formatSecs(run.DurationSecs),
			st.Attempts,
			st.Accuracy()*100,
			status)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderDetails(run, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderDetails(run store.RunRecord, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var lines []string
	if run.ExportPath != "" {
		lines = append(lines, "    exported to "+run.ExportPath)
	}
	if run.ExportError != "" {
		lines = append(lines, "    export failed: "+run.ExportError)
	}
	rows := s.results[run.RunID]
	if len(rows) == 0 {
		lines = append(lines, "    No questions answered")
	}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("    Q%-3d %-8s %-28s %d attempt(s)  %.2fs",
			r.Question, r.Mode, r.CorrectPath, r.Attempts, float64(r.ElapsedMs)/1000))
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render(l)))
		b.WriteString("\n")
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatSecs(secs float64) string {
	total := int(secs)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
