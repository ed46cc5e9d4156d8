package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/howell/dealdial/core"
	"github.com/howell/dealdial/internal/format"
)

// ValueEditor lets the user type an exact number for one control.
// Submit hands the parsed value to onSubmit; the caller normalizes it
// and moves the baseline so a deliberate edit never lights a diff
// badge. Bad input shows inline and keeps the editor open.
type ValueEditor struct {
	title    string
	hint     string
	input    textinput.Model
	onSubmit func(value float64) tea.Msg
	errText  string
}

func NewValueEditor(title, hint, initial string, onSubmit func(value float64) tea.Msg) *ValueEditor {
	inp := textinput.New()
	inp.Prompt = "= "
	inp.Placeholder = "exact value"
	inp.SetValue(initial)
	inp.CursorEnd()
	inp.Focus()
	return &ValueEditor{title: title, hint: hint, input: inp, onSubmit: onSubmit}
}

func (s *ValueEditor) Title() string { return s.title }
func (s *ValueEditor) Scope() string { return "screen:value-editor" }

func (s *ValueEditor) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return s, nil, true
		case "enter":
			value, err := format.ParseNumber(s.input.Value())
			if err != nil {
				s.errText = "Enter a number, like 24000 or $24,000"
				return s, nil, false
			}
			if s.onSubmit != nil {
				return s, func() tea.Msg { return s.onSubmit(value) }, true
			}
			return s, nil, true
		}
		s.errText = ""
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, false
}

func (s *ValueEditor) View(width, height int) string {
	lines := []string{s.title, ""}
	lines = append(lines, s.input.View())
	if s.errText != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
		lines = append(lines, errStyle.Render(s.errText))
	} else if s.hint != "" {
		hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
		lines = append(lines, hintStyle.Render(s.hint))
	}
	lines = append(lines, "", "Enter apply. Esc cancel.")
	return core.ClipHeight(strings.Join(lines, "\n"), core.MaxInt(5, height))
}
