package widgets

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type BadgeTone int

const (
	BadgeNeutral BadgeTone = iota
	BadgeUp
	BadgeDown
)

// Badge is a one-line chip for diff readouts. Up means the number grew,
// which for payments and prices reads as red; Down reads as green.
type Badge struct {
	Text string
	Tone BadgeTone
}

func (b Badge) Render(width, height int) string {
	if width <= 0 || height <= 0 || b.Text == "" {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#1e1e2e"))
	switch b.Tone {
	case BadgeUp:
		style = style.Background(lipgloss.Color("#f38ba8"))
	case BadgeDown:
		style = style.Background(lipgloss.Color("#a6e3a1"))
	default:
		style = style.Background(lipgloss.Color("#9399b2"))
	}
	return style.Render(ansi.Truncate(" "+b.Text+" ", width, ""))
}

// String renders the badge without a width constraint, for inline use
// next to a stepper value.
func (b Badge) String() string {
	if b.Text == "" {
		return ""
	}
	return b.Render(ansi.StringWidth(b.Text)+2, 1)
}
