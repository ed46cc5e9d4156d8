package screens

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/howell/dealdial/core"
)

// LenderChoice is one selectable rate source.
type LenderChoice struct {
	ID     string
	Name   string
	Detail string
}

func (i LenderChoice) Title() string       { return i.Name }
func (i LenderChoice) Description() string { return i.Detail }
func (i LenderChoice) FilterValue() string { return i.Name + " " + i.Detail }

// LenderPicker selects the lender whose rates feed the deal. Typing
// re-ranks by edit-distance similarity so near-miss spellings like
// "costal" still surface the right credit union.
type LenderPicker struct {
	input      textinput.Model
	list       list.Model
	allItems   []LenderChoice
	onSelected func(LenderChoice) tea.Msg
}

func NewLenderPicker(items []LenderChoice, onSelected func(LenderChoice) tea.Msg) *LenderPicker {
	inp := textinput.New()
	inp.Placeholder = "lender name"
	inp.Prompt = "> "
	inp.Focus()
	litems := make([]list.Item, 0, len(items))
	for _, it := range items {
		litems = append(litems, it)
	}
	lst := list.New(litems, list.NewDefaultDelegate(), 48, 12)
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	return &LenderPicker{input: inp, list: lst, allItems: items, onSelected: onSelected}
}

func (s *LenderPicker) Title() string { return "Lenders" }
func (s *LenderPicker) Scope() string { return "screen:lender-picker" }

func (s *LenderPicker) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, nil, true
		case "enter":
			if it, ok := s.list.SelectedItem().(LenderChoice); ok {
				if s.onSelected != nil {
					return s, func() tea.Msg { return s.onSelected(it) }, true
				}
			}
			return s, nil, true
		}
	}
	var cmd1 tea.Cmd
	s.input, cmd1 = s.input.Update(msg)
	s.refreshRanked()
	var cmd2 tea.Cmd
	s.list, cmd2 = s.list.Update(msg)
	return s, tea.Batch(cmd1, cmd2), false
}

func (s *LenderPicker) refreshRanked() {
	q := strings.TrimSpace(s.input.Value())
	ranked := RankLenders(s.allItems, q)
	items := make([]list.Item, 0, len(ranked))
	for _, it := range ranked {
		items = append(items, it)
	}
	_ = s.list.SetItems(items)
}

// RankLenders orders choices by similarity to the query. Substring hits
// rank first, then edit-distance similarity against the name; weak
// matches drop out entirely.
func RankLenders(items []LenderChoice, query string) []LenderChoice {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]LenderChoice(nil), items...)
	}
	type scored struct {
		item  LenderChoice
		score float64
	}
	ranked := make([]scored, 0, len(items))
	for _, it := range items {
		name := strings.ToLower(it.Name)
		haystack := name + " " + strings.ToLower(it.Detail)
		score := lenderSimilarity(name, q)
		if strings.Contains(haystack, q) {
			score += 1
		}
		if score < 0.3 {
			continue
		}
		ranked = append(ranked, scored{item: it, score: score})
	}
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].score > ranked[j-1].score; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	out := make([]LenderChoice, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.item)
	}
	return out
}

func lenderSimilarity(name, query string) float64 {
	if len(name) == 0 || len(query) == 0 {
		return 0
	}
	longest := len(name)
	if len(query) > longest {
		longest = len(query)
	}
	return 1 - float64(levenshtein.ComputeDistance(name, query))/float64(longest)
}

func (s *LenderPicker) View(width, height int) string {
	s.list.SetWidth(width)
	s.list.SetHeight(max(6, height-4))
	return "Choose a lender\n" + s.input.View() + "\n" + s.list.View()
}
