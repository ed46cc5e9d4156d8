package core

import (
	"database/sql"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/howell/dealdial/widgets"
)

type routerTab struct {
	keyHits     int
	otherHits   int
	interrupted int
}

type tickProbeMsg struct{}

func (t *routerTab) ID() string    { return "r" }
func (t *routerTab) Title() string { return "Router" }
func (t *routerTab) Scope() string { return "tab:r" }
func (t *routerTab) Build(m *Model) widgets.Widget {
	return widgets.Pane{Title: "t", Height: 10, Content: "x"}
}
func (t *routerTab) Update(m *Model, msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case tea.KeyMsg:
		t.keyHits++
	default:
		t.otherHits++
	}
	return nil
}
func (t *routerTab) InterruptHolds() { t.interrupted++ }

type fakeScreen struct {
	keyHits   int
	otherHits int
}

func (s *fakeScreen) Title() string        { return "Screen" }
func (s *fakeScreen) Scope() string        { return "screen:test" }
func (s *fakeScreen) View(int, int) string { return "screen" }
func (s *fakeScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	switch km := msg.(type) {
	case tea.KeyMsg:
		s.keyHits++
		if km.String() == "esc" {
			return s, nil, true
		}
	default:
		s.otherHits++
	}
	return s, nil, false
}

func TestScreenGetsKeyBeforeTab(t *testing.T) {
	tab := &routerTab{}
	m := NewModel([]Tab{tab}, NewKeyRegistry(nil), NewCommandRegistry(nil), &sql.DB{})
	screen := &fakeScreen{}
	m.PushScreen(screen)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	updated := next.(Model)
	if screen.keyHits != 1 {
		t.Fatalf("screen should handle key first")
	}
	if tab.keyHits != 0 {
		t.Fatalf("tab should not receive key when screen open")
	}
	if updated.screens.Len() != 1 {
		t.Fatalf("screen should remain open")
	}
}

func TestScreenCanPopItself(t *testing.T) {
	tab := &routerTab{}
	m := NewModel([]Tab{tab}, NewKeyRegistry(nil), NewCommandRegistry(nil), &sql.DB{})
	m.PushScreen(&fakeScreen{})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated := next.(Model)
	if updated.screens.Len() != 0 {
		t.Fatalf("expected screen to pop on esc")
	}
}

func TestNonKeyMessagesFlowToActiveTab(t *testing.T) {
	tab := &routerTab{}
	m := NewModel([]Tab{tab}, NewKeyRegistry(nil), NewCommandRegistry(nil), &sql.DB{})

	_, _ = m.Update(tickProbeMsg{})
	if tab.otherHits != 1 {
		t.Fatalf("tick-style messages should reach the active tab, hits=%d", tab.otherHits)
	}
}

func TestNonKeyMessagesFlowToTopScreenWhenOpen(t *testing.T) {
	tab := &routerTab{}
	m := NewModel([]Tab{tab}, NewKeyRegistry(nil), NewCommandRegistry(nil), &sql.DB{})
	screen := &fakeScreen{}
	m.PushScreen(screen)

	_, _ = m.Update(tickProbeMsg{})
	if screen.otherHits != 1 {
		t.Fatalf("open screen should absorb non-key messages")
	}
	if tab.otherHits != 0 {
		t.Fatalf("tab should not see messages behind a screen")
	}
}

func TestPushScreenInterruptsHolds(t *testing.T) {
	tab := &routerTab{}
	m := NewModel([]Tab{tab}, NewKeyRegistry(nil), NewCommandRegistry(nil), &sql.DB{})

	next, _ := m.Update(PushScreenMsg{Screen: &fakeScreen{}})
	updated := next.(Model)
	if tab.interrupted != 1 {
		t.Fatalf("opening a modal must end live hold sessions, interrupts=%d", tab.interrupted)
	}
	if updated.screens.Len() != 1 {
		t.Fatalf("expected screen pushed")
	}
}

func TestTabSwitchInterruptsHolds(t *testing.T) {
	first := &routerTab{}
	second := &routerTab{}
	m := NewModel([]Tab{first, second}, NewKeyRegistry(DefaultKeyBindings()), NewCommandRegistry(nil), &sql.DB{})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	updated := next.(Model)
	if updated.activeTab != 1 {
		t.Fatalf("activeTab = %d, want 1", updated.activeTab)
	}
	if first.interrupted != 1 {
		t.Fatalf("switching away must end hold sessions on the old tab")
	}
	if second.interrupted != 0 {
		t.Fatalf("new tab should not be interrupted")
	}
}

func TestCtrlCQuitsEvenWithScreenOpen(t *testing.T) {
	tab := &routerTab{}
	m := NewModel([]Tab{tab}, NewKeyRegistry(nil), NewCommandRegistry(nil), &sql.DB{})
	m.PushScreen(&fakeScreen{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	updated := next.(Model)
	if !updated.quitting {
		t.Fatalf("expected quitting state")
	}
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestStatusMsgUpdatesBar(t *testing.T) {
	tab := &routerTab{}
	m := NewModel([]Tab{tab}, NewKeyRegistry(nil), NewCommandRegistry(nil), &sql.DB{})

	next, _ := m.Update(StatusMsg{Text: "Applied 6.24% from Coastal CU", IsErr: false})
	updated := next.(Model)
	if updated.status != "Applied 6.24% from Coastal CU" || updated.statusErr {
		t.Fatalf("status not applied: %q err=%v", updated.status, updated.statusErr)
	}

	next2, _ := updated.Update(StatusMsg{Text: "rate out of range", IsErr: true})
	updated2 := next2.(Model)
	if !updated2.statusErr {
		t.Fatalf("expected error status")
	}
}
