// Package engine holds the policy and the corrective write path of the
// synchronizer.
//
// # Policy
//
// Two predicates derived from the host drive everything:
//
//   - AnyUnlocked: at least one open document is not locked
//   - HasDocuments: at least one document is open
//
// Document-group controls are enabled exactly while AnyUnlocked holds.
// Workspace-group controls are enabled while the workspace is empty or
// AnyUnlocked holds. Predicates are re-read on every decision and never
// cached.
//
// # The corrective write
//
// SetDesired is the only place the synchronizer writes a control's enabled
// flag. It is a no-op when the flag already matches, and otherwise performs
// the write under the mute protocol: cancel the control's change
// subscription, write, resubscribe. Hosts dispatch enabled-change
// notifications synchronously, so without the mute a corrective write inside
// a control's own change handler would recurse without bound. Dispatch is
// single-threaded, which makes the mute window atomic with respect to that
// control.
package engine
