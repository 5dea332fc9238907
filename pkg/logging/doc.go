// Package logging provides a thin subsystem-tagged facade over log/slog.
//
// Every log call names the subsystem it originates from ("Engine", "Router",
// "Registry", ...) so output can be filtered by area without each package
// carrying its own logger value.
//
// Two modes exist:
//
//   - CLI mode (InitForCLI): entries are written to the configured writer
//     through a slog text handler.
//   - Capture mode (InitForCapture): entries are delivered on a buffered
//     channel. The interactive shell uses this to replay, after each command,
//     the corrections the synchronizer performed while handling it.
//
// The facade never blocks the caller: in capture mode a full channel drops
// the entry rather than stalling the host's dispatch goroutine.
package logging
