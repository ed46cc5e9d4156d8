package control

import "math"

// centsStep is the rounding fallback when a control supplies no usable
// step. Every surface the engine serves is currency- or percent-valued,
// so two decimal places is the domain default.
const centsStep = 0.01

// Clamp confines value to [min, max]. NaN saturates to min so a garbage
// input can never propagate through a change event.
func Clamp(value, min, max float64) float64 {
	if math.IsNaN(value) || value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// RoundToStep rounds value to the nearest multiple of step counted from
// min, so a range like [500, 100000] with step 250 lands on 750, 1000,
// ... rather than on multiples of 250 from zero. A zero, negative, or
// NaN step falls back to cents. The result is canonicalized to two
// decimals to keep repeated small steps from accumulating float residue.
func RoundToStep(value, step, min float64) float64 {
	if math.IsNaN(value) {
		return min
	}
	if step <= 0 || math.IsNaN(step) {
		step = centsStep
	}
	n := math.Round((value - min) / step)
	return roundCents(min + n*step)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// NormalizeParams carries the per-control bounds used by Normalize.
// Baseline is nil while the control has not yet observed a value.
type NormalizeParams struct {
	Min           float64
	Max           float64
	Step          float64
	Baseline      *float64
	SnapThreshold float64

	// DisableSnap bypasses baseline snapping for this one proposal.
	// Set when the caller sits exactly on the baseline and is stepping
	// away from it; without the bypass the first step would snap
	// straight back and the control would be stuck.
	DisableSnap bool
}

// Normalize turns a raw proposed value into the canonical one:
//
//  1. with snapping enabled and a baseline within SnapThreshold, the
//     baseline is returned exactly, so "back to where I started" reads
//     as a zero diff with no floating-point near-miss
//  2. otherwise the proposal is rounded to the step grid and clamped
//
// Values the baseline cannot attract are never moved toward it, and
// normalizing an already-canonical value returns it unchanged.
func Normalize(raw float64, p NormalizeParams) float64 {
	if !p.DisableSnap && p.Baseline != nil && math.Abs(raw-*p.Baseline) <= p.SnapThreshold {
		return *p.Baseline
	}
	return Clamp(RoundToStep(raw, p.Step, p.Min), p.Min, p.Max)
}
