package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathquiz/internal/jsontree"
	"github.com/abhisek/pathquiz/internal/ui/theme"
)

// Block-letter title.
const arcadeTitleFull = `█▀█ ▄▀█ ▀█▀ █ █ █▀█ █ █ █ ▀█
█▀▀ █▀█  █  █▀█ ▀▀█ █▄█ █ █▄`

const arcadeTitleCompact = "P · A · T · H · Q · U · I · Z"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// cabinet border (2) + inner padding (4), capped
	return min(max(frameWidth-6, 20), 60)
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders past-run stats in a bordered box matching content width.
func renderStatsBar(st stats, cw int) string {
	runStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	accStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var text string
	switch {
	case !st.loaded:
		text = dimStyle.Render("loading history...")
	case st.runs == 0:
		text = dimStyle.Render("NO RUNS YET")
	default:
		text = fmt.Sprintf("%s  %s",
			runStyle.Render(fmt.Sprintf("▶ %d RUNS", st.runs)),
			accStyle.Render(fmt.Sprintf("◎ LAST %.0f%% ACCURACY", st.lastAccuracy*100)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Accent).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as plain lines for terminals
// where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Accent).
				Bold(true).
				Render(" ▸ "+label+" "))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   "+label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// sampleTree is the worked example shown under the title.
func sampleTree() *jsontree.Tree {
	inner := jsontree.NewBranch()
	inner.Set("orbit", &jsontree.Leaf{Value: "comet"})
	root := jsontree.NewBranch()
	root.Set("galaxy", inner)
	return &jsontree.Tree{Root: root, TargetPath: "galaxy.orbit", TargetValue: "comet", HasTarget: true}
}

// renderSample shows a tiny tree and the answer to it.
func renderSample(cw int) string {
	t := sampleTree()
	doc := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(jsontree.Render(t, jsontree.ModeIndented))
	caption := theme.Hint.Render("find ") +
		theme.Target.Render(t.TargetValue) +
		theme.Hint.Render(" → answer ") +
		theme.Selected.Render(t.TargetPath)

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Left, doc, "", caption))
}
