package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathquiz/internal/logger"
	"github.com/abhisek/pathquiz/internal/router"
	"github.com/abhisek/pathquiz/internal/screen"
	"github.com/abhisek/pathquiz/internal/screens/home"
	quizscreen "github.com/abhisek/pathquiz/internal/screens/quiz"
	"github.com/abhisek/pathquiz/internal/store"
	"github.com/abhisek/pathquiz/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	// Quiz is the template for every run started from the app.
	Quiz quizscreen.Options

	// EventRepo records runs and backs the history screen. May be nil.
	EventRepo store.EventRepo

	Logger *logger.Logger

	// StartQuiz opens a run immediately instead of waiting on the home menu.
	StartQuiz bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	newQuiz   func() screen.Screen
	startQuiz bool
	width     int
	height    int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	newQuiz := func() screen.Screen {
		o := opts.Quiz
		o.EventRepo = opts.EventRepo
		o.Logger = opts.Logger
		return quizscreen.New(o)
	}
	homeScreen := home.New(newQuiz, opts.EventRepo)
	return AppModel{
		router:    router.New(homeScreen),
		newQuiz:   newQuiz,
		startQuiz: opts.StartQuiz,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.startQuiz {
		cmds = append(cmds, func() tea.Msg {
			return router.PushScreenMsg{Screen: m.newQuiz()}
		})
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		if hints := kp.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
