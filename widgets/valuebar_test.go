package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestValueBarColumnRoundTrip(t *testing.T) {
	width := 50
	min, max := 0.0, 100000.0
	for _, v := range []float64{0, 20000, 50000, 100000} {
		col := ColumnForValue(v, width, min, max)
		back := ValueAtColumn(col, width, min, max)
		if diff := back - v; diff > 2500 || diff < -2500 {
			t.Fatalf("round trip for %v drifted to %v (col %d)", v, back, col)
		}
	}
}

func TestValueAtColumnClampsToTrack(t *testing.T) {
	width := 50
	if got := ValueAtColumn(-5, width, 0, 100); got != 0 {
		t.Fatalf("left overshoot = %v, want 0", got)
	}
	if got := ValueAtColumn(500, width, 0, 100); got != 100 {
		t.Fatalf("right overshoot = %v, want 100", got)
	}
}

func TestColumnForValueEndpoints(t *testing.T) {
	width := 50
	start, end := ValueBarTrackZone(width)
	if got := ColumnForValue(0, width, 0, 100); got != start {
		t.Fatalf("min column = %d, want %d", got, start)
	}
	if got := ColumnForValue(100, width, 0, 100); got != end-1 {
		t.Fatalf("max column = %d, want %d", got, end-1)
	}
}

func TestValueBarZonesPartitionWidth(t *testing.T) {
	width := 40
	ds, de := ValueBarDownZone(width)
	ts, te := ValueBarTrackZone(width)
	us, ue := ValueBarUpZone(width)
	if ds != 0 || de != ts || te != us || ue != width {
		t.Fatalf("zones do not tile: down [%d,%d) track [%d,%d) up [%d,%d)", ds, de, ts, te, us, ue)
	}
}

func TestValueBarRenderShowsHandleAndBaseline(t *testing.T) {
	bar := ValueBar{Min: 0, Max: 100, Value: 75, Baseline: 25, HasBaseline: true}
	out := bar.Render(40, 1)
	plain := ansi.Strip(out)
	if !strings.Contains(plain, "█") {
		t.Fatalf("handle missing: %q", plain)
	}
	if !strings.Contains(plain, "┊") {
		t.Fatalf("baseline tick missing: %q", plain)
	}
	if !strings.HasPrefix(plain, "◂") || !strings.HasSuffix(plain, "▸") {
		t.Fatalf("step arrows missing: %q", plain)
	}
}

func TestValueBarBaselineHiddenUnderHandle(t *testing.T) {
	bar := ValueBar{Min: 0, Max: 100, Value: 25, Baseline: 25, HasBaseline: true}
	out := ansi.Strip(bar.Render(40, 1))
	if strings.Contains(out, "┊") {
		t.Fatalf("handle should cover the baseline tick when they share a column: %q", out)
	}
}
