package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathquiz/internal/ui/theme"
)

// KeyPickedMsg is emitted when a key button is pressed.
type KeyPickedMsg struct {
	Key string
}

// KeyGrid lays out key buttons in rows and lets the user move between them
// with the arrow keys. Enter or space picks the highlighted key.
type KeyGrid struct {
	Keys     []string
	Selected int
	Columns  int
	Focused  bool
}

// NewKeyGrid creates a grid over keys with the given column count.
func NewKeyGrid(keys []string, columns int) KeyGrid {
	return KeyGrid{Keys: keys, Columns: max(columns, 1)}
}

// Current returns the highlighted key, or "" for an empty grid.
func (g KeyGrid) Current() string {
	if g.Selected < 0 || g.Selected >= len(g.Keys) {
		return ""
	}
	return g.Keys[g.Selected]
}

// Update handles navigation and picking. It ignores input while unfocused.
func (g KeyGrid) Update(msg tea.Msg) (KeyGrid, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !g.Focused || len(g.Keys) == 0 {
		return g, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if g.Selected > 0 {
			g.Selected--
		}
	case "right", "l":
		if g.Selected < len(g.Keys)-1 {
			g.Selected++
		}
	case "up", "k":
		if g.Selected-g.Columns >= 0 {
			g.Selected -= g.Columns
		}
	case "down", "j":
		if g.Selected+g.Columns < len(g.Keys) {
			g.Selected += g.Columns
		}
	case "home":
		g.Selected = 0
	case "end":
		g.Selected = len(g.Keys) - 1
	case "enter", "space":
		key := g.Current()
		return g, func() tea.Msg { return KeyPickedMsg{Key: key} }
	}
	return g, nil
}

// View renders the buttons row by row, each column padded to the widest key.
func (g KeyGrid) View() string {
	if len(g.Keys) == 0 {
		return theme.Hint.Render("(no keys)")
	}

	cellWidth := 0
	for _, k := range g.Keys {
		cellWidth = max(cellWidth, lipgloss.Width(k))
	}
	cellWidth += 2 // button padding

	var rows []string
	for start := 0; start < len(g.Keys); start += g.Columns {
		end := min(start+g.Columns, len(g.Keys))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			style := theme.KeyButtonDim
			if g.Focused {
				style = theme.KeyButton
				if i == g.Selected {
					style = theme.KeyButtonActive
				}
			}
			cells = append(cells, style.Width(cellWidth).Render(g.Keys[i]))
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return strings.Join(rows, "\n")
}

// ColumnsFor returns how many buttons of the widest key fit in width.
func ColumnsFor(keys []string, width int) int {
	cellWidth := 0
	for _, k := range keys {
		cellWidth = max(cellWidth, lipgloss.Width(k))
	}
	return max(width/(cellWidth+3), 1)
}
