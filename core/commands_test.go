package core

import (
	"database/sql"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSearchFiltersByScopeAndDisabled(t *testing.T) {
	reg := NewCommandRegistry([]Command{
		{ID: "a", Name: "Alpha", Scopes: []string{"tab:a"}},
		{ID: "b", Name: "Beta", Scopes: []string{"tab:b"}, Disabled: func(m *Model) (bool, string) { return true, "no rates loaded" }},
	})
	m := NewModel(nil, NewKeyRegistry(nil), reg, &sql.DB{})
	resA := reg.Search("", "tab:a", &m)
	if len(resA) != 1 || resA[0].CommandID != "a" {
		t.Fatalf("expected only command a in tab:a, got %+v", resA)
	}
	resB := reg.Search("", "tab:b", &m)
	if len(resB) != 1 || !resB[0].Disabled || resB[0].Reason != "no rates loaded" {
		t.Fatalf("expected disabled command in tab:b, got %+v", resB)
	}
}

func TestSearchRanksEnabledBeforeDisabled(t *testing.T) {
	reg := NewCommandRegistry([]Command{
		{ID: "z", Name: "Zero Out Trade-In", Scopes: []string{"*"}, Disabled: func(m *Model) (bool, string) { return true, "nothing to zero" }},
		{ID: "r", Name: "Reset Deal", Scopes: []string{"*"}},
	})
	m := NewModel(nil, NewKeyRegistry(nil), reg, &sql.DB{})
	res := reg.Search("", "tab:deal", &m)
	if len(res) != 2 {
		t.Fatalf("result count = %d, want 2", len(res))
	}
	if res[0].CommandID != "r" || res[1].CommandID != "z" {
		t.Fatalf("enabled command should sort first, got %s then %s", res[0].CommandID, res[1].CommandID)
	}
}

func TestExecuteRunsEnabledAndBlocksDisabled(t *testing.T) {
	ran := false
	reg := NewCommandRegistry([]Command{
		{ID: "go", Name: "Go", Scopes: []string{"*"}, Execute: func(m *Model) tea.Cmd {
			ran = true
			return StatusCmd("done")
		}},
		{ID: "stop", Name: "Stop", Scopes: []string{"*"}, Disabled: func(m *Model) (bool, string) { return true, "locked" }},
	})
	m := NewModel(nil, NewKeyRegistry(nil), reg, &sql.DB{})

	cmd := reg.Execute("go", &m)
	if !ran {
		t.Fatalf("expected execute handler to fire")
	}
	if cmd == nil {
		t.Fatalf("expected command from execute handler")
	}

	blocked := reg.Execute("stop", &m)
	if blocked == nil {
		t.Fatalf("expected status command for disabled entry")
	}
	msg, ok := blocked().(StatusMsg)
	if !ok || msg.Text != "locked" {
		t.Fatalf("expected disabled reason as status, got %#v", msg)
	}
}
