package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pathquiz/internal/quiz"
	"github.com/abhisek/pathquiz/internal/router"
	quizscreen "github.com/abhisek/pathquiz/internal/screens/quiz"
)

func testModel(t *testing.T) AppModel {
	t.Helper()
	cfg := quiz.DefaultConfig()
	cfg.TotalQuestions = 2
	return newAppModel(Options{Quiz: quizscreen.Options{Config: cfg, Seed: 7, ExportPath: t.TempDir() + "/out.xlsx"}})
}

func TestAppModel_StartsOnHome(t *testing.T) {
	m := testModel(t)
	if got := m.router.Active().Title(); got != "Home" {
		t.Errorf("active = %q, want Home", got)
	}
}

func TestAppModel_EscDeliveredToQuiz(t *testing.T) {
	m := testModel(t)
	m.router.Push(m.newQuiz())

	updated, _ := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	m = updated.(AppModel)
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want the quiz to stay on top", m.router.Depth())
	}
	if hints := m.footerHints(m.router.Active()); len(hints) != 3 {
		t.Errorf("expected quit confirmation hints, got %+v", hints)
	}
}

func TestAppModel_EscPopsOtherScreens(t *testing.T) {
	m := testModel(t)
	m.router.Push(m.newQuiz())

	// A quiz that failed to start releases Esc.
	cfg := quiz.DefaultConfig()
	cfg.TotalQuestions = 0
	broken := quizscreen.New(quizscreen.Options{Config: cfg, Seed: 1})
	m.router.Replace(broken)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestAppModel_StartQuizPushesRun(t *testing.T) {
	cfg := quiz.DefaultConfig()
	m := newAppModel(Options{Quiz: quizscreen.Options{Config: cfg, Seed: 3}, StartQuiz: true})
	if m.Init() == nil {
		t.Fatal("expected init commands")
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
