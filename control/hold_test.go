package control

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// testTiming keeps tea.Tick commands fast enough to execute inline.
var testTiming = HoldTiming{Delay: time.Millisecond, Interval: time.Millisecond}

func runTick(t *testing.T, cmd tea.Cmd) HoldTickMsg {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a timer command")
	}
	msg, ok := cmd().(HoldTickMsg)
	if !ok {
		t.Fatalf("expected HoldTickMsg from timer command")
	}
	return msg
}

func TestHoldRepeaterLifecycle(t *testing.T) {
	id := NewControlID()
	h := NewHoldRepeater(testTiming)
	if h.Phase() != HoldIdle {
		t.Fatalf("fresh repeater phase = %v, want idle", h.Phase())
	}

	cmd := h.Press(id, +1)
	if h.Phase() != HoldPending {
		t.Fatalf("phase after press = %v, want pending", h.Phase())
	}
	if h.Direction() != +1 {
		t.Fatalf("direction during session = %d, want +1", h.Direction())
	}

	dir, next, ok := h.Tick(id, runTick(t, cmd))
	if !ok || dir != +1 {
		t.Fatalf("first tick = (%d, %v), want (+1, true)", dir, ok)
	}
	if h.Phase() != HoldRepeating {
		t.Fatalf("phase after delay tick = %v, want repeating", h.Phase())
	}

	dir, next, ok = h.Tick(id, runTick(t, next))
	if !ok || dir != +1 {
		t.Fatalf("repeat tick = (%d, %v), want (+1, true)", dir, ok)
	}

	h.Release()
	if h.Phase() != HoldIdle || h.Holding() {
		t.Fatalf("phase after release = %v, want idle", h.Phase())
	}
	if h.Direction() != 0 {
		t.Fatalf("direction after release = %d, want 0", h.Direction())
	}
	if _, _, ok := h.Tick(id, runTick(t, next)); ok {
		t.Fatalf("tick scheduled before release must be inert after it")
	}
}

func TestHoldRepeaterStaleSessionIgnored(t *testing.T) {
	id := NewControlID()
	h := NewHoldRepeater(testTiming)

	first := runTick(t, h.Press(id, +1))
	// A second press supersedes the first session entirely.
	second := runTick(t, h.Press(id, -1))

	if _, _, ok := h.Tick(id, first); ok {
		t.Fatalf("tick from the superseded press must be ignored")
	}
	dir, _, ok := h.Tick(id, second)
	if !ok || dir != -1 {
		t.Fatalf("live session tick = (%d, %v), want (-1, true)", dir, ok)
	}
}

func TestHoldRepeaterIgnoresOtherControls(t *testing.T) {
	id := NewControlID()
	h := NewHoldRepeater(testTiming)
	msg := runTick(t, h.Press(id, +1))

	msg.Control = NewControlID()
	if _, _, ok := h.Tick(id, msg); ok {
		t.Fatalf("tick addressed to another control must be ignored")
	}
}

func TestHoldRepeaterReleaseIdempotent(t *testing.T) {
	h := NewHoldRepeater(testTiming)
	h.Release()
	h.Release()
	if h.Phase() != HoldIdle {
		t.Fatalf("release on idle repeater changed phase to %v", h.Phase())
	}

	id := NewControlID()
	h.Press(id, +1)
	h.Release()
	h.Release()
	if h.Holding() {
		t.Fatalf("double release left a live session")
	}
}

func TestHoldRepeaterOneStepPerTick(t *testing.T) {
	id := NewControlID()
	h := NewHoldRepeater(testTiming)
	msg := runTick(t, h.Press(id, +1))

	if _, _, ok := h.Tick(id, msg); !ok {
		t.Fatalf("expected live tick to step")
	}
	// Replaying the same delay tick must not step again: Tick armed the
	// interval session already, so the replay carries a dead session.
	if _, _, ok := h.Tick(id, msg); ok {
		t.Fatalf("replayed tick stepped twice")
	}
}

func TestHoldRepeaterSetTiming(t *testing.T) {
	id := NewControlID()
	h := NewHoldRepeater(testTiming)

	msg := runTick(t, h.Press(id, +1))
	h.SetTiming(HoldTiming{Delay: 7 * time.Millisecond, Interval: 3 * time.Millisecond})
	// The session armed before the change still ticks.
	if _, _, ok := h.Tick(id, msg); !ok {
		t.Fatalf("tick from the running session must survive SetTiming")
	}
	if h.timing != (HoldTiming{Delay: 7 * time.Millisecond, Interval: 3 * time.Millisecond}) {
		t.Fatalf("timing after SetTiming = %+v", h.timing)
	}

	h.SetTiming(HoldTiming{})
	if h.timing != DefaultHoldTiming() {
		t.Fatalf("zero timing must normalize to defaults, got %+v", h.timing)
	}
}

func TestHoldTimingDefaults(t *testing.T) {
	got := HoldTiming{}.normalized()
	want := DefaultHoldTiming()
	if got != want {
		t.Fatalf("normalized zero timing = %+v, want %+v", got, want)
	}
	custom := HoldTiming{Delay: 10 * time.Millisecond, Interval: 5 * time.Millisecond}
	if custom.normalized() != custom {
		t.Fatalf("normalized custom timing changed: %+v", custom.normalized())
	}
}
