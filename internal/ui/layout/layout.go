// Package layout draws the frame around every screen: a header naming the
// screen, a footer of key hints, and the content area between them.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathquiz/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// borderPad is the horizontal space a rounded border with one
	// column of padding takes.
	borderPad = 4
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func (h KeyHint) render() string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) + " " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
}

// IsTooSmall reports whether the terminal cannot fit the quiz screen.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// Remaining returns the lines left for a flexible block once the fixed
// blocks and gap lines are drawn, never less than floor.
func Remaining(height, gaps, floor int, fixed ...string) int {
	used := gaps
	for _, block := range fixed {
		used += lipgloss.Height(block)
	}
	return max(height-used, floor)
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nThe quiz needs at least %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader draws the app name on the left, the screen title centred and
// status (the question counter, say) on the right. status may be empty.
func RenderHeader(title, status string, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  pathquiz")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(width-borderPad, 0)
	nameW, centerW, rightW := lipgloss.Width(name), lipgloss.Width(center), lipgloss.Width(right)

	leftGap := max((inner-centerW)/2-nameW, 1)
	rightGap := max(inner-nameW-leftGap-centerW-rightW, 1)

	return bar(name+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

// RenderFooter draws as many hints as fit on one line. The last hint is
// always kept since it carries the quit key.
func RenderFooter(hints []KeyHint, width int) string {
	const sep = "   "
	budget := max(width-borderPad, 0) - 2

	rendered := make([]string, len(hints))
	total := 0
	for i, h := range hints {
		rendered[i] = h.render()
		total += lipgloss.Width(rendered[i])
		if i > 0 {
			total += len(sep)
		}
	}
	for len(rendered) > 1 && total > budget {
		drop := len(rendered) - 2
		total -= lipgloss.Width(rendered[drop]) + len(sep)
		rendered = append(rendered[:drop], rendered[drop+1:]...)
	}

	return bar("  "+strings.Join(rendered, sep), width)
}

// RenderFrame stacks header, content and footer, sizing the content to fill
// the rest of the terminal.
func RenderFrame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(Remaining(height, 0, 0, header, footer)).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
