package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(79, 30) {
		t.Error("79 columns should be too small")
	}
	if !IsTooSmall(100, 23) {
		t.Error("23 rows should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}

func TestRemaining(t *testing.T) {
	if got := Remaining(20, 2, 3, "a\nb", "c"); got != 15 {
		t.Errorf("Remaining = %d, want 15", got)
	}
	if got := Remaining(5, 4, 3, "a\nb\nc"); got != 3 {
		t.Errorf("Remaining should not go below the floor, got %d", got)
	}
}

func TestRenderHeader_ShowsTitleAndStatus(t *testing.T) {
	out := RenderHeader("Quiz", "Q 3/30", 80)
	for _, want := range []string{"pathquiz", "Quiz", "Q 3/30"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderFooter_DropsHintsThatDoNotFit(t *testing.T) {
	hints := []KeyHint{
		{Key: "Tab", Description: "Switch focus"},
		{Key: "s", Description: "Submit"},
		{Key: "c", Description: "Clear path"},
		{Key: "Ctrl+C", Description: "Quit"},
	}

	wide := RenderFooter(hints, 120)
	if !strings.Contains(wide, "Clear path") {
		t.Error("wide footer should show every hint")
	}

	narrow := RenderFooter(hints, 36)
	if !strings.Contains(narrow, "Ctrl+C") {
		t.Error("quit hint must always be shown")
	}
	if strings.Contains(narrow, "Clear path") {
		t.Error("narrow footer should drop hints before the last one")
	}
}

func TestRenderFrame_FillsHeight(t *testing.T) {
	header := RenderHeader("Home", "", 80)
	footer := RenderFooter([]KeyHint{{Key: "Enter", Description: "Select"}}, 80)

	out := RenderFrame(header, "body", footer, 80, 30)
	if h := lipgloss.Height(out); h != 30 {
		t.Errorf("frame height = %d, want 30", h)
	}
}
