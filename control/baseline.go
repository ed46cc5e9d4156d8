package control

import "math"

// Baseline tracks the value/payment pair a control diffs against. It is
// distinct from whatever value the control mounted with: the first
// observed pair seeds it, and an explicit Update moves it later (e.g.
// after committing an exact-value entry), at which point diffs are
// measured from the new anchor.
type Baseline struct {
	value   float64
	payment *float64
	seeded  bool
}

// Diff is the delta between a control's current state and its baseline.
// PaymentDiff is nil unless both sides carry a payment.
type Diff struct {
	ValueDiff   float64
	PaymentDiff *float64
	AtBaseline  bool
}

// NewBaseline returns an unseeded baseline; the first Observe seeds it.
func NewBaseline() *Baseline {
	return &Baseline{}
}

// BaselineAt returns a baseline pinned to an explicit pair, for
// controls whose anchor is known before the first render.
func BaselineAt(value float64, payment *float64) *Baseline {
	b := &Baseline{}
	b.Update(value, payment)
	return b
}

// Observe seeds the baseline from the first value/payment pair flowing
// through the control. Later observations are ignored; only Update
// moves a seeded baseline.
func (b *Baseline) Observe(value float64, payment *float64) {
	if b.seeded {
		return
	}
	b.Update(value, payment)
}

// Update overwrites the baseline pair. An out-of-range or stale value
// is accepted as-is; diffs against it stay meaningful even if the
// value is no longer reachable.
func (b *Baseline) Update(value float64, payment *float64) {
	b.value = value
	b.payment = clonePayment(payment)
	b.seeded = true
}

// Value reports the baseline value, and false while unseeded.
func (b *Baseline) Value() (float64, bool) {
	return b.value, b.seeded
}

// Payment returns the baseline payment, nil when unknown.
func (b *Baseline) Payment() *float64 {
	return clonePayment(b.payment)
}

// Reset returns the value a reset should restore, i.e. the baseline
// itself. The caller emits it as a normal change; nothing is mutated
// here. ok is false while the baseline is unseeded.
func (b *Baseline) Reset() (value float64, ok bool) {
	return b.value, b.seeded
}

// Diff computes the current deltas. A value within threshold of the
// anchor counts as at-baseline, mirroring the snap window, so badges
// never light up over floating residue the snap would erase anyway.
func (b *Baseline) Diff(current float64, currentPayment *float64, threshold float64) Diff {
	if !b.seeded {
		return Diff{AtBaseline: true}
	}
	d := Diff{ValueDiff: current - b.value}
	d.AtBaseline = math.Abs(d.ValueDiff) <= threshold
	if b.payment != nil && currentPayment != nil {
		pd := *currentPayment - *b.payment
		d.PaymentDiff = &pd
	}
	return d
}

func clonePayment(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
