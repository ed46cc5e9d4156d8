package screens

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type submittedMsg struct{ value float64 }

func TestValueEditorSubmitsParsedValue(t *testing.T) {
	editor := NewValueEditor("Vehicle Price", "", "$24,500", func(v float64) tea.Msg {
		return submittedMsg{value: v}
	})
	next, cmd, pop := editor.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next == nil || !pop {
		t.Fatalf("expected editor to close on valid submit")
	}
	if cmd == nil {
		t.Fatalf("expected submit command")
	}
	msg, ok := cmd().(submittedMsg)
	if !ok || msg.value != 24500 {
		t.Fatalf("submitted = %#v, want 24500", msg)
	}
}

func TestValueEditorRejectsGarbageAndStaysOpen(t *testing.T) {
	editor := NewValueEditor("Vehicle Price", "", "not a price", func(v float64) tea.Msg {
		t.Fatalf("submit must not fire on bad input")
		return nil
	})
	_, cmd, pop := editor.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if pop {
		t.Fatalf("editor should stay open on bad input")
	}
	if cmd != nil {
		t.Fatalf("no command expected on bad input")
	}
	if !strings.Contains(editor.View(60, 10), "Enter a number") {
		t.Fatalf("expected inline error in view")
	}
}

func TestValueEditorTypingClearsError(t *testing.T) {
	editor := NewValueEditor("Vehicle Price", "", "x", nil)
	_, _, _ = editor.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if editor.errText == "" {
		t.Fatalf("expected error after bad submit")
	}
	_, _, _ = editor.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'5'}})
	if editor.errText != "" {
		t.Fatalf("typing should clear the error")
	}
}

func TestValueEditorEscCancels(t *testing.T) {
	fired := false
	editor := NewValueEditor("Vehicle Price", "", "100", func(v float64) tea.Msg {
		fired = true
		return nil
	})
	_, cmd, pop := editor.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !pop {
		t.Fatalf("esc should close the editor")
	}
	if cmd != nil || fired {
		t.Fatalf("esc must not submit")
	}
}
