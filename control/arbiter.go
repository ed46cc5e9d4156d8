package control

import "github.com/google/uuid"

// ControlID identifies one mounted control for keyboard arbitration and
// hold-timer routing. IDs are opaque; widgets mint them at construction.
type ControlID string

// NewControlID returns a fresh unique id.
func NewControlID() ControlID {
	return ControlID(uuid.NewString())
}

// Arbiter decides which single control receives global arrow-key input.
// The app wires exactly one instance through its screens at startup;
// tests build their own. Everything runs on the program's update
// goroutine, so there is no locking.
type Arbiter struct {
	owner     ControlID
	listeners []func(ControlID)
}

// NewArbiter returns an arbiter with no owner.
func NewArbiter() *Arbiter {
	return &Arbiter{}
}

// Owner reports the control currently routing global keys, or "" when
// nothing is engaged.
func (a *Arbiter) Owner() ControlID {
	return a.owner
}

// Claim makes id the keyboard owner. The last claimant wins; claiming
// ownership already held is a silent no-op, so hover-motion events that
// re-assert the same owner every frame do not spam subscribers.
func (a *Arbiter) Claim(id ControlID) {
	a.setOwner(id)
}

// Release clears ownership only if id still holds it. A control that
// lost its claim to a later hover must not evict the winner when its
// own blur finally lands.
func (a *Arbiter) Release(id ControlID) {
	if a.owner != id {
		return
	}
	a.setOwner("")
}

// Subscribe registers fn to run on every ownership change and returns
// its unsubscribe func. No-op claims do not notify.
func (a *Arbiter) Subscribe(fn func(ControlID)) func() {
	a.listeners = append(a.listeners, fn)
	i := len(a.listeners) - 1
	return func() {
		a.listeners[i] = nil
	}
}

func (a *Arbiter) setOwner(id ControlID) {
	if a.owner == id {
		return
	}
	a.owner = id
	for _, fn := range a.listeners {
		if fn != nil {
			fn(a.owner)
		}
	}
}
