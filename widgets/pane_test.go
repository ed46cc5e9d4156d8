package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestPaneMarkersFollowState(t *testing.T) {
	idle := ansi.Strip(Pane{Title: "Price", Height: 5}.Render(30, 5))
	if strings.Contains(idle, "▶") || strings.Contains(idle, "●") {
		t.Fatalf("idle pane should carry no marker: %q", idle)
	}
	selected := ansi.Strip(Pane{Title: "Price", Height: 5, Selected: true}.Render(30, 5))
	if !strings.Contains(selected, "▶") {
		t.Fatalf("selected pane missing marker: %q", selected)
	}
	focused := ansi.Strip(Pane{Title: "Price", Height: 5, Selected: true, Focused: true}.Render(30, 5))
	if !strings.Contains(focused, "●") {
		t.Fatalf("focused pane missing marker: %q", focused)
	}
}

func TestPaneClampsContentToFrame(t *testing.T) {
	content := strings.Repeat("wide line that keeps going and going\n", 10)
	out := Pane{Title: "T", Height: 5, Content: content}.Render(24, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("line count = %d, want 5", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 24 {
			t.Fatalf("line %d width = %d, want 24", i, w)
		}
	}
}
