// Package core contains app-wide contracts and state orchestration.
//
// Allowed here:
// - model routing, message contracts, command and key registries
// - shared state machines used across screens (for example picker logic)
// - tab and pane policy (tab definitions, pane host select/focus/jump behavior)
//
// Not allowed here:
// - concrete screen/modal rendering implementations
// - low-level widget rendering primitives
// - deal math or control engine internals (control, internal/finance)
package core
