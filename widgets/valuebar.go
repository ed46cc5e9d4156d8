package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ValueBar draws a slider track: step arrows at both ends, a filled
// track up to the handle, and an optional baseline tick. Column math
// lives in ValueAtColumn/ColumnForValue so mouse handling and rendering
// cannot disagree about where a value sits.
type ValueBar struct {
	Min         float64
	Max         float64
	Value       float64
	Baseline    float64
	HasBaseline bool
	Hovering    bool
	Holding     int
	Label       string
	Caption     string
}

const (
	valueBarArrowWidth = 2
	valueBarMinWidth   = valueBarArrowWidth*2 + 4
)

// ValueBarDownZone returns the [start, end) columns of the left step
// arrow.
func ValueBarDownZone(width int) (int, int) {
	if width < valueBarMinWidth {
		return 0, 0
	}
	return 0, valueBarArrowWidth
}

// ValueBarUpZone returns the [start, end) columns of the right step
// arrow.
func ValueBarUpZone(width int) (int, int) {
	if width < valueBarMinWidth {
		return 0, 0
	}
	return width - valueBarArrowWidth, width
}

// ValueBarTrackZone returns the [start, end) columns of the draggable
// track between the arrows.
func ValueBarTrackZone(width int) (int, int) {
	if width < valueBarMinWidth {
		return 0, 0
	}
	return valueBarArrowWidth, width - valueBarArrowWidth
}

// ValueAtColumn maps a column inside the track to a value. Columns
// outside the track clamp to the nearest end.
func ValueAtColumn(col, width int, min, max float64) float64 {
	start, end := ValueBarTrackZone(width)
	cells := end - start
	if cells <= 1 || max <= min {
		return min
	}
	if col < start {
		col = start
	}
	if col >= end {
		col = end - 1
	}
	frac := float64(col-start) / float64(cells-1)
	return min + frac*(max-min)
}

// ColumnForValue maps a value to its track column.
func ColumnForValue(v float64, width int, min, max float64) int {
	start, end := ValueBarTrackZone(width)
	cells := end - start
	if cells <= 1 || max <= min {
		return start
	}
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	frac := (v - min) / (max - min)
	col := start + int(frac*float64(cells-1)+0.5)
	if col >= end {
		col = end - 1
	}
	return col
}

func (b ValueBar) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if width < valueBarMinWidth {
		return ansi.Truncate(b.Label, width, "")
	}

	arrowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	if b.Hovering {
		arrowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa"))
	}
	heldStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#1e1e2e")).Background(lipgloss.Color("#89b4fa"))
	filledStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa"))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#45475a"))
	baselineStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
	handleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Bold(true)
	captionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))

	left := arrowStyle.Render("◂ ")
	right := arrowStyle.Render(" ▸")
	if b.Holding < 0 {
		left = heldStyle.Render("◂ ")
	}
	if b.Holding > 0 {
		right = heldStyle.Render(" ▸")
	}

	start, end := ValueBarTrackZone(width)
	handleCol := ColumnForValue(b.Value, width, b.Min, b.Max)
	baselineCol := -1
	if b.HasBaseline {
		baselineCol = ColumnForValue(b.Baseline, width, b.Min, b.Max)
	}

	var track strings.Builder
	for col := start; col < end; col++ {
		switch {
		case col == handleCol:
			track.WriteString(handleStyle.Render("█"))
		case col == baselineCol:
			track.WriteString(baselineStyle.Render("┊"))
		case col < handleCol:
			track.WriteString(filledStyle.Render("─"))
		default:
			track.WriteString(emptyStyle.Render("─"))
		}
	}

	lines := make([]string, 0, 3)
	if b.Label != "" {
		lines = append(lines, ansi.Truncate(b.Label, width, ""))
	}
	lines = append(lines, left+track.String()+right)
	if b.Caption != "" {
		lines = append(lines, captionStyle.Render(ansi.Truncate(b.Caption, width, "")))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
