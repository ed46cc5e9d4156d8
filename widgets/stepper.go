package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Stepper draws a [-] value [+] row. The glyph positions are fixed so
// StepperMinusZone/StepperPlusZone can map mouse columns back to the
// buttons without re-measuring rendered output.
type Stepper struct {
	Value      string
	Badge      string
	Disclosure string
	Hovering   bool
	Holding    int
}

const (
	stepperGlyphWidth = 3
	stepperMinWidth   = stepperGlyphWidth*2 + 3
)

// StepperMinusZone returns the [start, end) columns of the decrement
// button.
func StepperMinusZone(width int) (int, int) {
	if width < stepperMinWidth {
		return 0, 0
	}
	return 0, stepperGlyphWidth
}

// StepperPlusZone returns the [start, end) columns of the increment
// button.
func StepperPlusZone(width int) (int, int) {
	if width < stepperMinWidth {
		return 0, 0
	}
	return width - stepperGlyphWidth, width
}

func (s Stepper) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	value := s.Value
	if s.Badge != "" {
		value += " " + s.Badge
	}

	if width < stepperMinWidth {
		return ansi.Truncate(value, width, "")
	}

	idleGlyph := lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	hotGlyph := lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa"))
	heldGlyph := lipgloss.NewStyle().Foreground(lipgloss.Color("#1e1e2e")).Background(lipgloss.Color("#89b4fa"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Bold(true)

	glyph := idleGlyph
	if s.Hovering {
		glyph = hotGlyph
	}
	minus := glyph.Render("[-]")
	plus := glyph.Render("[+]")
	if s.Holding < 0 {
		minus = heldGlyph.Render("[-]")
	}
	if s.Holding > 0 {
		plus = heldGlyph.Render("[+]")
	}

	inner := width - stepperGlyphWidth*2 - 2
	valueText := ansi.Truncate(value, inner, "")
	pad := inner - ansi.StringWidth(valueText)
	left := pad / 2
	right := pad - left
	row := minus + " " + strings.Repeat(" ", left) + valueStyle.Render(valueText) + strings.Repeat(" ", right) + " " + plus

	lines := []string{row}
	if s.Disclosure != "" && height > 1 {
		disclosure := lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8")).Render(ansi.Truncate(s.Disclosure, width, ""))
		lines = append(lines, disclosure)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
