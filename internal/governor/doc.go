// Package governor wires the registry, engine, and router to one host
// context and owns their lifecycle.
//
// # Initialization
//
// New walks and classifies the host UI tree, then attaches, in order: one
// change subscription per governed control, the sentinel's change
// subscription, and the document opened/closed subscriptions. It finishes by
// reconciling every governed control against the current predicates, so the
// UI is policy-correct before the first event arrives. Classification
// failures (missing container, missing sentinel) abort before the first
// subscription is attached; there is no degraded mode against an
// incompatible host.
//
// # Teardown
//
// Close is the inverse, plus fail-open: after detaching everything, every
// governed control is forced back to enabled. A host whose synchronizer has
// been unloaded must not be left with permanently disabled menus. Close is
// idempotent and safe to call after a failed New (which returns no governor
// to close, having attached nothing).
package governor
