package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/howell/dealdial/core"
)

// Choice is one row of a ChoiceModal.
type Choice struct {
	ID    string
	Label string
	Desc  string
}

// ChoiceModal is a small single-select list over the shared picker
// state machine. Settings use it for fixed option sets like the
// currency symbol.
type ChoiceModal struct {
	title      string
	scope      string
	picker     *core.Picker
	allItems   map[string]Choice
	onSelected func(Choice) tea.Msg
}

func NewChoiceModal(title, scope string, items []Choice, onSelected func(Choice) tea.Msg) *ChoiceModal {
	listItems := make([]core.PickerItem, 0, len(items))
	all := make(map[string]Choice, len(items))
	for _, it := range items {
		all[it.ID] = it
		listItems = append(listItems, core.PickerItem{
			ID:     it.ID,
			Label:  it.Label,
			Meta:   it.Desc,
			Search: it.Label + " " + it.Desc,
		})
	}
	return &ChoiceModal{
		title:      title,
		scope:      scope,
		picker:     core.NewPicker(title, listItems),
		allItems:   all,
		onSelected: onSelected,
	}
}

func (s *ChoiceModal) Title() string { return s.title }
func (s *ChoiceModal) Scope() string { return s.scope }

func (s *ChoiceModal) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil, false
	}
	result := s.picker.HandleKey(keyMsg.String())
	switch result.Action {
	case core.PickerActionCancelled:
		return s, nil, true
	case core.PickerActionSelected:
		item, exists := s.allItems[result.Item.ID]
		if !exists {
			return s, nil, true
		}
		if s.onSelected != nil {
			return s, func() tea.Msg { return s.onSelected(item) }, true
		}
		return s, nil, true
	default:
		return s, nil, false
	}
}

func (s *ChoiceModal) View(width, height int) string {
	lines := []string{s.title}
	filter := s.picker.Query()
	if filter == "" {
		filter = "(type to filter)"
	}
	lines = append(lines, "Filter: "+filter, "")
	items := s.picker.Items()
	if len(items) == 0 {
		lines = append(lines, "  No items")
	} else {
		for idx, item := range items {
			prefix := "  "
			if idx == s.picker.Cursor() {
				prefix = "> "
			}
			label := item.Label
			if item.Meta != "" {
				label += " - " + item.Meta
			}
			lines = append(lines, prefix+label)
		}
	}
	lines = append(lines, "", "Enter select. Esc cancel.")
	return core.ClipHeight(strings.Join(lines, "\n"), core.MaxInt(6, height))
}
