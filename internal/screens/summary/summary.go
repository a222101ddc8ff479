package summary

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathquiz/internal/quiz"
	"github.com/abhisek/pathquiz/internal/router"
	"github.com/abhisek/pathquiz/internal/screen"
	"github.com/abhisek/pathquiz/internal/ui/layout"
	"github.com/abhisek/pathquiz/internal/ui/theme"
)

// SummaryScreen displays the results of a completed run.
type SummaryScreen struct {
	summary    *quiz.Summary
	exportPath string
	exportErr  error
	table      viewport.Model
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. exportErr is shown in place of the saved
// notice when the export failed.
func New(summary *quiz.Summary, exportPath string, exportErr error) *SummaryScreen {
	s := &SummaryScreen{
		summary:    summary,
		exportPath: exportPath,
		exportErr:  exportErr,
		table:      viewport.New(viewport.WithWidth(72), viewport.WithHeight(10)),
	}
	if summary != nil {
		s.table.SetContent(renderTable(summary.Results))
	}
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Experiment Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var top strings.Builder
	top.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "Experiment Complete"))
	top.WriteString("\n\n")
	top.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), fmt.Sprintf(
		"Questions: %d      Attempts: %d      First try: %d      Accuracy: %.0f%%",
		sum.Questions, sum.TotalAttempts, sum.FirstTry, sum.Accuracy*100)))
	top.WriteString("\n")
	top.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), fmt.Sprintf(
		"Total time: %s      Average: %s      Indented: %d      Compact: %d",
		formatDuration(sum.TotalTime), formatDuration(sum.AverageTime), sum.Indented, sum.Compact)))
	top.WriteString("\n\n")

	var notice string
	if s.exportErr != nil {
		notice = center(theme.Incorrect, "Export failed: "+s.exportErr.Error())
	} else {
		notice = center(theme.Correct, "Data Saved: results written to "+s.exportPath)
	}

	tableWidth := min(width-4, 96)
	tableHeight := max(height-lipgloss.Height(top.String())-lipgloss.Height(notice)-2, 3)
	s.table.SetWidth(tableWidth)
	s.table.SetHeight(tableHeight)
	table := lipgloss.PlaceHorizontal(width, lipgloss.Center, s.table.View())

	return top.String() + table + "\n\n" + notice
}

// renderTable lays out one line per result under a header.
func renderTable(results []quiz.Result) string {
	pathWidth := len("Correct Path")
	for _, r := range results {
		pathWidth = max(pathWidth, len(r.CorrectPath), len(r.UserPath))
	}

	row := func(q, mode, correct, user, attempts, secs string) string {
		return fmt.Sprintf("%-4s %-9s %-*s  %-*s  %8s  %8s",
			q, mode, pathWidth, correct, pathWidth, user, attempts, secs)
	}

	var b strings.Builder
	b.WriteString(theme.Label.Render(row("#", "Mode", "Correct Path", "User Path", "Attempts", "Time (s)")))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", lipgloss.Width(row("", "", "", "", "", "")))))
	for _, r := range results {
		line := row(
			fmt.Sprintf("%d", r.Question),
			r.Mode.String(),
			r.CorrectPath,
			r.UserPath,
			fmt.Sprintf("%d", r.Attempts),
			fmt.Sprintf("%.2f", r.Seconds()),
		)
		style := theme.Body
		if r.Attempts > 1 {
			style = lipgloss.NewStyle().Foreground(theme.Accent)
		}
		b.WriteString("\n")
		b.WriteString(style.Render(line))
	}
	return b.String()
}

func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
