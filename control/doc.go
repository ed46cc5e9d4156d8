// Package control is the numeric control engine shared by every deal
// parameter widget: clamp/step/snap normalization, baseline diff
// tracking, press-and-hold repeat, and the arbiter that decides which
// single control owns global arrow-key input.
//
// Allowed here:
// - pure value math (clamping, step rounding, baseline snapping)
// - per-control state machines (hold sessions, baseline tracking)
// - the process-wide keyboard ownership registry and its messages
//
// Not allowed here:
// - rendering, styles, or any lipgloss usage
// - screen/tab policy, persistence, payment math
//
// Controls never own the canonical value. Screens own it, pass it down
// on every render, and receive proposals back through the normalization
// path; nothing un-clamped or un-snapped ever leaves this package.
package control
