package control

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"
)

// Config describes one numeric control. Baseline pins the diff anchor
// up front; leave it nil to seed from the first observed value instead.
type Config struct {
	Min             float64
	Max             float64
	Step            float64
	SnapThreshold   float64
	Baseline        *float64
	BaselinePayment *float64
	Timing          HoldTiming
}

// Control is the engine behind a single numeric widget. It owns the
// interaction state (hover, keyboard ownership, hold sessions, baseline)
// but never the value itself: the screen passes the current value into
// every operation and applies whatever comes back.
type Control struct {
	id       ControlID
	cfg      Config
	baseline *Baseline
	hold     *HoldRepeater
	arbiter  *Arbiter

	hovering bool
	focused  bool
}

// New builds a control registered against arb.
func New(cfg Config, arb *Arbiter) *Control {
	c := &Control{
		id:       NewControlID(),
		cfg:      cfg,
		baseline: NewBaseline(),
		hold:     NewHoldRepeater(cfg.Timing),
		arbiter:  arb,
	}
	if cfg.Baseline != nil {
		c.baseline.Update(*cfg.Baseline, cfg.BaselinePayment)
	}
	return c
}

// ID returns the control's arbitration id.
func (c *Control) ID() ControlID {
	return c.id
}

// Observe records the value/payment pair flowing down on render. The
// first pair seeds an unpinned baseline; after that it is a no-op.
func (c *Control) Observe(value float64, payment *float64) {
	c.baseline.Observe(value, payment)
}

// Step proposes one step from current in direction (-1 or +1) and
// returns the normalized result. Stepping off an exact baseline skips
// snapping so the control cannot stick.
func (c *Control) Step(current float64, direction int) float64 {
	return c.normalize(current, current+float64(direction)*c.stepSize())
}

// Propose normalizes an arbitrary raw value, e.g. a slider drag
// position or a parsed exact entry, relative to current.
func (c *Control) Propose(current, raw float64) float64 {
	return c.normalize(current, raw)
}

// PressHold applies the immediate step for a press and arms the hold
// delay timer. The returned value is the new canonical value; the
// command must be dispatched for repeats to fire.
func (c *Control) PressHold(current float64, direction int) (float64, tea.Cmd) {
	next := c.Step(current, direction)
	return next, c.hold.Press(c.id, direction)
}

// HoldTick consumes a repeat timer message. ok is false for ticks that
// belong to another control or a session already torn down.
func (c *Control) HoldTick(current float64, msg HoldTickMsg) (value float64, cmd tea.Cmd, ok bool) {
	dir, cmd, ok := c.hold.Tick(c.id, msg)
	if !ok {
		return current, nil, false
	}
	return c.Step(current, dir), cmd, true
}

// ReleaseHold ends any live hold session.
func (c *Control) ReleaseHold() {
	c.hold.Release()
}

// Holding reports whether a hold session is live.
func (c *Control) Holding() bool {
	return c.hold.Holding()
}

// HoldDirection reports the live hold's step direction, 0 while idle.
func (c *Control) HoldDirection() int {
	return c.hold.Direction()
}

// SetHovering updates pointer-over state. Entering claims keyboard
// ownership; leaving releases it unless the control is still focused,
// and always ends any hold in flight, since the next tick must not
// step a control the pointer has left.
func (c *Control) SetHovering(hovering bool) {
	if hovering == c.hovering {
		return
	}
	c.hovering = hovering
	if !hovering {
		c.hold.Release()
	}
	c.syncOwnership()
}

// SetFocused updates focus state with the same claim/release rules as
// hovering.
func (c *Control) SetFocused(focused bool) {
	if focused == c.focused {
		return
	}
	c.focused = focused
	c.syncOwnership()
}

// Hovering reports pointer-over state.
func (c *Control) Hovering() bool {
	return c.hovering
}

// RoutesKeys reports whether a global arrow key should reach this
// control: it must be hovered or own the keyboard, and no text input
// may be capturing keystrokes.
func (c *Control) RoutesKeys(textInputFocused bool) bool {
	if textInputFocused {
		return false
	}
	return c.hovering || c.arbiter.Owner() == c.id
}

// SetTiming replaces the hold repeat timing. A session already running
// keeps its old cadence until released.
func (c *Control) SetTiming(timing HoldTiming) {
	c.cfg.Timing = timing.normalized()
	c.hold.SetTiming(timing)
}

// SetSnapThreshold replaces the snap window. Takes effect on the next
// proposal; the baseline does not move.
func (c *Control) SetSnapThreshold(threshold float64) {
	if threshold < 0 || math.IsNaN(threshold) {
		threshold = 0
	}
	c.cfg.SnapThreshold = threshold
}

// Rebaseline moves the diff anchor to the given pair. Exact-value
// commits use this so the edited value becomes the new "no change".
func (c *Control) Rebaseline(value float64, payment *float64) {
	c.baseline.Update(value, payment)
}

// Reset returns the value that restores the baseline. ok is false
// while no baseline exists yet. The caller emits the value as a normal
// change; the baseline itself does not move.
func (c *Control) Reset() (value float64, ok bool) {
	return c.baseline.Reset()
}

// Diff reports the current deltas against the baseline. The snap
// threshold doubles as the at-baseline tolerance.
func (c *Control) Diff(current float64, payment *float64) Diff {
	return c.baseline.Diff(current, payment, c.cfg.SnapThreshold)
}

// Baseline exposes the tracker for read access.
func (c *Control) Baseline() *Baseline {
	return c.baseline
}

// Unmount tears the control down: live timers die and keyboard
// ownership is released if held.
func (c *Control) Unmount() {
	c.hold.Release()
	c.hovering = false
	c.focused = false
	c.arbiter.Release(c.id)
}

func (c *Control) syncOwnership() {
	if c.hovering || c.focused {
		c.arbiter.Claim(c.id)
	} else {
		c.arbiter.Release(c.id)
	}
}

func (c *Control) stepSize() float64 {
	if c.cfg.Step <= 0 || math.IsNaN(c.cfg.Step) {
		return centsStep
	}
	return c.cfg.Step
}

func (c *Control) normalize(current, raw float64) float64 {
	p := NormalizeParams{
		Min:           c.cfg.Min,
		Max:           c.cfg.Max,
		Step:          c.cfg.Step,
		SnapThreshold: c.cfg.SnapThreshold,
	}
	if bv, ok := c.baseline.Value(); ok {
		b := bv
		p.Baseline = &b
		p.DisableSnap = current == bv
	}
	return Normalize(raw, p)
}
