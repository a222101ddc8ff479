package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pathquiz/internal/router"
	"github.com/abhisek/pathquiz/internal/screen"
	"github.com/abhisek/pathquiz/internal/screens/history"
	"github.com/abhisek/pathquiz/internal/store"
	"github.com/abhisek/pathquiz/internal/ui/components"
)

type stats struct {
	loaded       bool
	runs         int
	lastAccuracy float64
}

type statsLoadedMsg struct {
	stats stats
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu       components.Menu
	menuLabels []string
	eventRepo  store.EventRepo
	stats      stats
}

var (
	_ screen.Screen  = (*HomeScreen)(nil)
	_ screen.Resumer = (*HomeScreen)(nil)
)

// New creates a new HomeScreen. newQuiz builds the screen for a fresh run;
// eventRepo may be nil, which hides history.
func New(newQuiz func() screen.Screen, eventRepo store.EventRepo) *HomeScreen {
	menuLabels := []string{"START QUIZ", "HISTORY", "EXIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: newQuiz()}
			}
		}},
		{Label: menuLabels[1], Disabled: eventRepo == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(eventRepo)}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		eventRepo:  eventRepo,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume reloads the stats when a run or the history screen is closed.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.eventRepo
	if repo == nil {
		h.stats.loaded = true
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		runs, err := repo.QueryRuns(ctx, store.QueryOpts{})
		if err != nil || len(runs) == 0 {
			return statsLoadedMsg{stats: stats{loaded: true}}
		}
		st := stats{loaded: true, runs: len(runs)}
		if as, err := repo.AttemptStats(ctx, runs[0].RunID); err == nil {
			st.lastAccuracy = as.Accuracy()
		}
		return statsLoadedMsg{stats: st}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		h.stats = msg.stats
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer
	compact := height+6 < 30 || width < 100
	cw := contentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, renderSample(cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw))
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
