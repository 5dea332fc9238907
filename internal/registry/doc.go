// Package registry performs the one-time classification of host UI items
// into governed groups and owns the per-control subscription table.
//
// Classification happens once, at initialization, by walking the host's tray
// menu, main-menu groups, and configured toolbar. Each item lands in exactly
// one class: document-group, workspace-group, sentinel, or ignored. The
// default for an unrecognized item is the document group, so controls added
// by future host versions are governed automatically.
//
// After Build, membership is immutable. The registry's remaining job is the
// subscription table: exactly one live change subscription per governed
// control while the system runs, with Mute/Unmute bracketing corrective
// writes and Clear detaching everything at teardown. All of Mute, Unmute,
// MuteAll, and Clear are idempotent.
package registry
