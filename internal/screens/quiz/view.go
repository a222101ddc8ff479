package quiz

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/pathquiz/internal/quiz"
	"github.com/abhisek/pathquiz/internal/ui/components"
	"github.com/abhisek/pathquiz/internal/ui/layout"
	"github.com/abhisek/pathquiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, height, s.errMsg)
	case s.question == nil:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Generating question..."))
	case s.confirmQuit:
		return renderQuitConfirm(width, height, s.quiz.Answered(), s.quiz.Total())
	case s.feedback == feedbackCorrect:
		return renderFeedback(width, height, qz.CorrectMessage, theme.Success)
	case s.feedback == feedbackIncorrect:
		return renderFeedback(width, height, qz.IncorrectMessage, theme.Error)
	}
	return s.renderQuestion(width, height)
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	q := s.question
	inner := max(width-4, 20)

	info := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(
		"Question %d/%d   Mode: %s   Attempts: %d   Time: %s",
		q.Index, s.quiz.Total(), q.Mode, q.Attempts, formatElapsed(s.elapsed)))
	progress := components.NewProgressBar("", s.quiz.Answered(), s.quiz.Total(), inner).View()

	target := theme.Label.Render("Target Attribute: ") + theme.Target.Render(q.Tree.TargetValue)

	current := s.path.Display()
	if current == "" {
		current = theme.Hint.Render("(empty)")
	}
	pathLine := theme.Label.Render("Current Path: ") + theme.Body.Render(current)

	s.grid.Columns = components.ColumnsFor(q.Keys, inner)
	keys := s.grid.View()

	inputLine := theme.Label.Render("Path: ") + s.input.View()
	buttons := components.ButtonRow(
		components.NewButton("Submit", "s", true),
		components.NewButton("Remove Last", "⌫", false),
		components.NewButton("Clear Path", "c", false),
	)

	above := strings.Join([]string{info, progress, "", target}, "\n")
	below := strings.Join([]string{pathLine, "", keys, "", inputLine, buttons}, "\n")

	// Border plus the blank lines around the pane take 4 lines.
	treeHeight := layout.Remaining(height, 4, 3, above, below)
	s.tree.SetWidth(inner - 4)
	s.tree.SetHeight(treeHeight)
	pane := theme.TreePane
	if s.tree.TotalLineCount() > treeHeight {
		pane = theme.TreePaneFocused
	}
	tree := pane.Width(inner).Render(s.tree.View())

	body := strings.Join([]string{above, "", tree, "", below}, "\n")
	return lipgloss.NewStyle().Padding(0, 2).Render(body)
}

func renderFeedback(width, height int, message string, c color.Color) string {
	box := components.Overlay(message, c, min(width-8, 60))
	hint := theme.Hint.Render("press any key to continue")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, box, "", hint))
}

func renderQuitConfirm(width, height, answered, total int) string {
	msg := fmt.Sprintf("End this quiz?\n\n%d of %d questions answered. Results are only exported when the quiz is complete.\n\n[Y] End quiz   [N] Keep going",
		answered, total)
	box := components.Overlay(msg, theme.Accent, min(width-8, 60))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func renderError(width, height int, msg string) string {
	text := lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+msg) +
		"\n\n" + theme.Hint.Render("press any key to go back")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}

func formatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// highlightTree colours each quoted string of a rendered document: a string
// followed by a colon is a key, any other is a value. Line breaks are kept.
func highlightTree(rendered string) string {
	lines := strings.Split(rendered, "\n")
	for i, line := range lines {
		lines[i] = highlightLine(line)
	}
	return strings.Join(lines, "\n")
}

func highlightLine(line string) string {
	var b strings.Builder
	for line != "" {
		open := strings.IndexByte(line, '"')
		if open < 0 {
			b.WriteString(line)
			break
		}
		b.WriteString(line[:open])
		line = line[open:]

		quoted, err := strconv.QuotedPrefix(line)
		if err != nil {
			b.WriteString(line)
			break
		}
		line = line[len(quoted):]
		if strings.HasPrefix(line, ":") {
			b.WriteString(theme.TreeKey.Render(quoted))
		} else {
			b.WriteString(theme.TreeValue.Render(quoted))
		}
	}
	return b.String()
}
