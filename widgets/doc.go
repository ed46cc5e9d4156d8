// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing/composition helpers (pane chrome, stacks, popup
//   overlay compositor, stepper and value-bar rows, badges, charts)
// - pure column math for mouse hit zones, so renderers and hit tests
//   share one source of truth
//
// Not allowed here:
// - key handling, app state transitions, scope logic, or tab policy
// - the numeric engine itself (that is package control)
package widgets
