// Package sim provides a complete in-memory host for the CLI and the
// integration tests.
//
// The simulated host reproduces the real host's two ordering quirks exactly,
// because the synchronizer's event handling is built around them:
//
//   - The sentinel tray item ("Close All Documents") flips before the
//     document-opened notification and after the document-closed
//     notification.
//   - Opened/closed notifications fire once per document, not once per
//     empty/non-empty transition.
//
// Controls dispatch change notifications synchronously and on every write,
// which is the stricter of the behaviors real hosts exhibit.
package sim
