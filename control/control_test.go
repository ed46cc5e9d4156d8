package control

import (
	"testing"
)

func priceControl(arb *Arbiter) *Control {
	return New(Config{
		Min:           0,
		Max:           100000,
		Step:          100,
		SnapThreshold: 100,
		Baseline:      f64(20000),
		Timing:        testTiming,
	}, arb)
}

func TestControlStepOffBaselineDoesNotStick(t *testing.T) {
	c := priceControl(NewArbiter())

	next := c.Step(20000, +1)
	if next != 20100 {
		t.Fatalf("Step(+1) from baseline = %v, want 20100", next)
	}
	next = c.Step(next, +1)
	if next != 20200 {
		t.Fatalf("second Step(+1) = %v, want 20200", next)
	}
	// Stepping back down lands raw 20100 inside the snap window, so the
	// control comes home in one step, exactly.
	next = c.Step(next, -1)
	if next != 20000 {
		t.Fatalf("Step(-1) from 20200 = %v, want snap to 20000", next)
	}
	if d := c.Diff(next, nil); !d.AtBaseline {
		t.Fatalf("expected exact baseline after stepping back, diff %+v", d)
	}
	// And stepping away again escapes the window rather than sticking.
	if got := c.Step(next, -1); got != 19900 {
		t.Fatalf("Step(-1) off baseline = %v, want 19900", got)
	}
}

func TestControlStepClampsAtBounds(t *testing.T) {
	c := priceControl(NewArbiter())
	if got := c.Step(100000, +1); got != 100000 {
		t.Fatalf("Step past max = %v, want 100000", got)
	}
	if got := c.Step(0, -1); got != 0 {
		t.Fatalf("Step past min = %v, want 0", got)
	}
}

func TestControlStepDefaultsToCents(t *testing.T) {
	c := New(Config{Min: 0, Max: 99.99, Timing: testTiming}, NewArbiter())
	if got := c.Step(5.99, +1); got != 6.00 {
		t.Fatalf("cents Step(+1) = %v, want 6.00", got)
	}
}

func TestControlProposeSnapsDrags(t *testing.T) {
	c := priceControl(NewArbiter())
	if got := c.Propose(25000, 20060); got != 20000 {
		t.Fatalf("Propose(20060) = %v, want snap to 20000", got)
	}
	if got := c.Propose(25000, 43217); got != 43200 {
		t.Fatalf("Propose(43217) = %v, want 43200", got)
	}
}

func TestControlObserveSeedsBaselineOnce(t *testing.T) {
	arb := NewArbiter()
	c := New(Config{Min: 0, Max: 100000, Step: 100, SnapThreshold: 100, Timing: testTiming}, arb)

	c.Observe(24000, f64(500))
	c.Observe(30000, f64(650))
	v, ok := c.Baseline().Value()
	if !ok || v != 24000 {
		t.Fatalf("baseline = %v, %v, want seeded once at 24000", v, ok)
	}
}

func TestControlRebaselineMovesAnchor(t *testing.T) {
	c := priceControl(NewArbiter())
	c.Rebaseline(26500, f64(551.25))

	if d := c.Diff(26500, f64(551.25)); !d.AtBaseline {
		t.Fatalf("expected new anchor to read as baseline, diff %+v", d)
	}
	d := c.Diff(27500, f64(572))
	if d.ValueDiff != 1000 {
		t.Fatalf("ValueDiff after rebaseline = %v, want 1000", d.ValueDiff)
	}
	if d.PaymentDiff == nil || *d.PaymentDiff != 20.75 {
		t.Fatalf("PaymentDiff after rebaseline = %v, want 20.75", d.PaymentDiff)
	}
}

func TestControlResetRestoresBaseline(t *testing.T) {
	c := priceControl(NewArbiter())
	v, ok := c.Reset()
	if !ok || v != 20000 {
		t.Fatalf("Reset() = %v, %v, want 20000, true", v, ok)
	}

	unseeded := New(Config{Min: 0, Max: 10, Timing: testTiming}, NewArbiter())
	if _, ok := unseeded.Reset(); ok {
		t.Fatalf("Reset with no baseline reported ok")
	}
}

func TestControlHoverClaimsAndReleasesOwnership(t *testing.T) {
	arb := NewArbiter()
	price := priceControl(arb)
	term := New(Config{Min: 36, Max: 84, Step: 1, Timing: testTiming}, arb)

	price.SetHovering(true)
	if arb.Owner() != price.ID() {
		t.Fatalf("owner = %q, want hovered price control", arb.Owner())
	}

	term.SetHovering(true)
	if arb.Owner() != term.ID() {
		t.Fatalf("owner = %q, want later-hovered term control", arb.Owner())
	}

	// Price un-hovers after already losing the claim; term keeps keys.
	price.SetHovering(false)
	if arb.Owner() != term.ID() {
		t.Fatalf("stale un-hover evicted owner, got %q", arb.Owner())
	}

	term.SetHovering(false)
	if arb.Owner() != "" {
		t.Fatalf("owner = %q after all controls left, want none", arb.Owner())
	}
}

func TestControlFocusKeepsOwnershipThroughHoverLeave(t *testing.T) {
	arb := NewArbiter()
	c := priceControl(arb)

	c.SetFocused(true)
	c.SetHovering(true)
	c.SetHovering(false)
	if arb.Owner() != c.ID() {
		t.Fatalf("hover-leave dropped ownership of a focused control")
	}
	c.SetFocused(false)
	if arb.Owner() != "" {
		t.Fatalf("owner = %q after blur, want none", arb.Owner())
	}
}

func TestControlRoutesKeys(t *testing.T) {
	arb := NewArbiter()
	c := priceControl(arb)

	if c.RoutesKeys(false) {
		t.Fatalf("idle control routed keys")
	}
	c.SetHovering(true)
	if !c.RoutesKeys(false) {
		t.Fatalf("hovered control did not route keys")
	}
	if c.RoutesKeys(true) {
		t.Fatalf("control routed keys while a text input was focused")
	}

	c.SetHovering(false)
	c.SetFocused(true)
	if !c.RoutesKeys(false) {
		t.Fatalf("keyboard owner did not route keys")
	}

	other := New(Config{Min: 0, Max: 10, Timing: testTiming}, arb)
	other.SetHovering(true)
	if c.RoutesKeys(false) {
		t.Fatalf("control routed keys after losing ownership")
	}
	if !other.RoutesKeys(false) {
		t.Fatalf("new owner did not route keys")
	}
}

func TestControlPressHoldRepeats(t *testing.T) {
	arb := NewArbiter()
	c := priceControl(arb)
	c.SetHovering(true)

	value, cmd := c.PressHold(20000, +1)
	if value != 20100 {
		t.Fatalf("press value = %v, want immediate step to 20100", value)
	}
	if c.HoldDirection() != +1 {
		t.Fatalf("HoldDirection during hold = %d, want +1", c.HoldDirection())
	}

	value, cmd, ok := c.HoldTick(value, runTick(t, cmd))
	if !ok || value != 20200 {
		t.Fatalf("delay tick = (%v, %v), want (20200, true)", value, ok)
	}
	value, cmd, ok = c.HoldTick(value, runTick(t, cmd))
	if !ok || value != 20300 {
		t.Fatalf("repeat tick = (%v, %v), want (20300, true)", value, ok)
	}

	c.ReleaseHold()
	if _, _, ok := c.HoldTick(value, runTick(t, cmd)); ok {
		t.Fatalf("tick after release still stepped")
	}
}

func TestControlHoverLeaveEndsHold(t *testing.T) {
	arb := NewArbiter()
	c := priceControl(arb)
	c.SetHovering(true)

	_, cmd := c.PressHold(20000, +1)
	c.SetHovering(false)
	if c.Holding() {
		t.Fatalf("hold survived hover-leave")
	}
	if _, _, ok := c.HoldTick(20100, runTick(t, cmd)); ok {
		t.Fatalf("tick from before hover-leave still stepped")
	}
}

func TestControlSetSnapThreshold(t *testing.T) {
	c := priceControl(NewArbiter())

	c.SetSnapThreshold(25)
	if got := c.Propose(25000, 20060); got != 20100 {
		t.Fatalf("Propose(20060) with 25 threshold = %v, want plain rounding to 20100", got)
	}
	if got := c.Propose(25000, 20020); got != 20000 {
		t.Fatalf("Propose(20020) with 25 threshold = %v, want snap to 20000", got)
	}

	c.SetSnapThreshold(-5)
	if d := c.Diff(20000, nil); !d.AtBaseline {
		t.Fatalf("negative threshold must clamp to zero, diff %+v", d)
	}
}

func TestControlUnmountTearsDown(t *testing.T) {
	arb := NewArbiter()
	c := priceControl(arb)
	c.SetHovering(true)
	_, cmd := c.PressHold(20000, +1)

	c.Unmount()
	if arb.Owner() != "" {
		t.Fatalf("unmount left ownership with %q", arb.Owner())
	}
	if c.Holding() {
		t.Fatalf("unmount left a live hold session")
	}
	if _, _, ok := c.HoldTick(20100, runTick(t, cmd)); ok {
		t.Fatalf("tick delivered after unmount still stepped")
	}
}
