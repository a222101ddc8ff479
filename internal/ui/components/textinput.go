package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathquiz/internal/ui/theme"
)

// PathInput wraps bubbles/textinput for typing dotted paths. Whitespace is
// rejected as it is typed since no key contains any.
type PathInput struct {
	Model     textinput.Model
	submitted bool
	valid     bool
}

// NewPathInput creates a focused path input.
func NewPathInput(placeholder string, charLimit int) PathInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.Focus()
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return PathInput{Model: ti}
}

// Init returns the initial command.
func (p PathInput) Init() tea.Cmd {
	return p.Model.Focus()
}

// Update handles messages.
func (p PathInput) Update(msg tea.Msg) (PathInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if kmsg.Text != "" && strings.TrimSpace(kmsg.Text) == "" {
			return p, nil
		}
		p.submitted = false
	}

	var cmd tea.Cmd
	p.Model, cmd = p.Model.Update(msg)
	return p, cmd
}

// View renders the input with a check or cross after a submission.
func (p PathInput) View() string {
	view := p.Model.View()
	if p.submitted {
		if p.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (p PathInput) Value() string {
	return p.Model.Value()
}

// SetValue replaces the input value and moves the cursor to the end.
func (p *PathInput) SetValue(s string) {
	p.Model.SetValue(s)
	p.Model.CursorEnd()
}

// Reset clears the value and the submission marker.
func (p *PathInput) Reset() {
	p.Model.Reset()
	p.submitted = false
}

// Focus focuses the input.
func (p *PathInput) Focus() tea.Cmd {
	return p.Model.Focus()
}

// Blur removes focus from the input.
func (p *PathInput) Blur() {
	p.Model.Blur()
}

// Focused reports whether the input has focus.
func (p PathInput) Focused() bool {
	return p.Model.Focused()
}

// Submit marks the input as submitted with a validation result.
func (p *PathInput) Submit(valid bool) {
	p.submitted = true
	p.valid = valid
}
