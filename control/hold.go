package control

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Hold timing shared by every control. Two of the legacy widgets
// hard-coded 300/120 and the third drifted to 500/100 for no recorded
// reason; these are the single defaults now, overridable per control.
const (
	defaultHoldDelay    = 300 * time.Millisecond
	defaultHoldInterval = 120 * time.Millisecond
)

// HoldTiming configures press-and-hold repeat: Delay before the first
// repeat, Interval between subsequent ones.
type HoldTiming struct {
	Delay    time.Duration
	Interval time.Duration
}

// DefaultHoldTiming returns the app-wide repeat timing.
func DefaultHoldTiming() HoldTiming {
	return HoldTiming{Delay: defaultHoldDelay, Interval: defaultHoldInterval}
}

func (t HoldTiming) normalized() HoldTiming {
	if t.Delay <= 0 {
		t.Delay = defaultHoldDelay
	}
	if t.Interval <= 0 {
		t.Interval = defaultHoldInterval
	}
	return t
}

// HoldPhase is the repeater's lifecycle state.
type HoldPhase int

const (
	// HoldIdle means no press is active.
	HoldIdle HoldPhase = iota
	// HoldPending means a press landed and the delay timer is running.
	HoldPending
	// HoldRepeating means the delay elapsed and interval ticks are firing.
	HoldRepeating
)

// HoldTickMsg drives an active hold session. Session identifies the
// press that scheduled the tick; ticks from a superseded session are
// ignored, which is how a restarted or released hold cancels timers
// already in flight.
type HoldTickMsg struct {
	Control ControlID
	Session int
}

// HoldRepeater runs the press-and-hold state machine for one control:
// idle until pressed, pending through the initial delay, then repeating
// on the interval until released. At most one session is live; pressing
// again tears the old one down first.
type HoldRepeater struct {
	timing    HoldTiming
	phase     HoldPhase
	direction int
	session   int
}

// NewHoldRepeater returns an idle repeater. Zero timing fields fall
// back to the defaults.
func NewHoldRepeater(timing HoldTiming) *HoldRepeater {
	return &HoldRepeater{timing: timing.normalized()}
}

// Press starts a hold session stepping in direction (-1 or +1) and
// returns the command arming the delay timer. Any session already
// running is invalidated. The immediate first step is the caller's to
// apply; ticks only cover the repeats.
func (h *HoldRepeater) Press(id ControlID, direction int) tea.Cmd {
	h.session++
	h.phase = HoldPending
	h.direction = direction
	return h.tick(id, h.timing.Delay)
}

// Tick consumes a timer message. When the message belongs to the live
// session it reports the direction to step, the command arming the next
// interval, and ok=true. Consuming a tick advances the session, so
// every message is good for exactly one step. Messages addressed to
// another control or carrying a dead session are inert.
func (h *HoldRepeater) Tick(id ControlID, msg HoldTickMsg) (direction int, cmd tea.Cmd, ok bool) {
	if msg.Control != id || msg.Session != h.session || h.phase == HoldIdle {
		return 0, nil, false
	}
	h.phase = HoldRepeating
	h.session++
	return h.direction, h.tick(id, h.timing.Interval), true
}

// SetTiming replaces the repeat timing for future sessions. A session
// already running keeps its old cadence until released.
func (h *HoldRepeater) SetTiming(timing HoldTiming) {
	h.timing = timing.normalized()
}

// Direction reports the live session's step direction, 0 while idle.
// Widgets use it to highlight the held arrow.
func (h *HoldRepeater) Direction() int {
	if h.phase == HoldIdle {
		return 0
	}
	return h.direction
}

// Release ends the current session. Releasing with nothing held, or
// twice, is a no-op; the repeater is safe to release on hover-leave,
// unmount, and key-up alike.
func (h *HoldRepeater) Release() {
	if h.phase == HoldIdle {
		return
	}
	h.session++
	h.phase = HoldIdle
	h.direction = 0
}

// Phase reports the current lifecycle state.
func (h *HoldRepeater) Phase() HoldPhase {
	return h.phase
}

// Holding reports whether a session is live.
func (h *HoldRepeater) Holding() bool {
	return h.phase != HoldIdle
}

func (h *HoldRepeater) tick(id ControlID, d time.Duration) tea.Cmd {
	session := h.session
	return tea.Tick(d, func(time.Time) tea.Msg {
		return HoldTickMsg{Control: id, Session: session}
	})
}
