package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/howell/dealdial/core"
)

// Confirm asks a yes/no question before a destructive action. Enter or
// y confirms, esc or n cancels.
type Confirm struct {
	question  string
	detail    string
	onConfirm func() tea.Msg
}

func NewConfirm(question, detail string, onConfirm func() tea.Msg) *Confirm {
	return &Confirm{question: question, detail: detail, onConfirm: onConfirm}
}

func (s *Confirm) Title() string { return "Confirm" }
func (s *Confirm) Scope() string { return "screen:confirm" }

func (s *Confirm) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil, false
	}
	switch key.String() {
	case "y", "enter":
		if s.onConfirm != nil {
			return s, func() tea.Msg { return s.onConfirm() }, true
		}
		return s, nil, true
	case "n", "esc":
		return s, nil, true
	}
	return s, nil, false
}

func (s *Confirm) View(width, height int) string {
	lines := []string{s.question}
	if s.detail != "" {
		detailStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
		lines = append(lines, detailStyle.Render(s.detail))
	}
	lines = append(lines, "", "y/Enter confirm. n/Esc cancel.")
	return core.ClipHeight(strings.Join(lines, "\n"), core.MaxInt(4, height))
}
