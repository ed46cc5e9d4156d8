package widgets

import (
	"fmt"
	"strings"
)

type ChartPoint struct {
	Label string
	Value float64
}

// Chart is a horizontal bar chart. Format renders the value after each
// bar; when nil the raw number is shown.
type Chart struct {
	Title  string
	Data   []ChartPoint
	Format func(float64) string
}

func (c Chart) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(c.Data) == 0 {
		return c.Title + "\n(no data)"
	}
	maxV := 0.0
	labelW := 0
	for _, p := range c.Data {
		if p.Value > maxV {
			maxV = p.Value
		}
		if len(p.Label) > labelW {
			labelW = len(p.Label)
		}
	}
	if maxV <= 0 {
		maxV = 1
	}
	format := c.Format
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.2f", v) }
	}
	lines := []string{}
	if c.Title != "" {
		lines = append(lines, c.Title)
	}
	barSpace := max(1, width-labelW-14)
	for _, p := range c.Data {
		w := int((p.Value / maxV) * float64(barSpace))
		if w < 1 {
			w = 1
		}
		lines = append(lines, fmt.Sprintf("%-*s %s %s", labelW, p.Label, strings.Repeat("█", w), format(p.Value)))
		if len(lines) >= height {
			break
		}
	}
	return strings.Join(lines, "\n")
}
