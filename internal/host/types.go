// Package host defines the boundary to the application that owns the UI tree.
//
// Everything in this package is an interface: the synchronizer never owns
// menus, toolbars, or documents, it only observes and writes the enabled flag
// of controls handed to it. Implementations must deliver all notifications on
// a single logical dispatch goroutine and must invoke handlers synchronously;
// the rest of the repository is built on that contract.
//
// Control implementations must be comparable (pointer types are), because the
// registry keys its subscription table on control identity.
package host

// EnabledHandler is invoked after a control's enabled flag has been written.
type EnabledHandler func(Control)

// Control is an opaque handle to a host-owned UI item. Its enabled flag is
// mutable by anyone: this system, the host, and third-party code all write it.
type Control interface {
	// Name returns the control's identity. It is only meaningful during
	// classification; afterwards controls are tracked by handle identity.
	Name() string

	// Enabled reports the current enabled flag.
	Enabled() bool

	// SetEnabled writes the enabled flag. Hosts may fire change
	// notifications even when the written value equals the current one,
	// which is why callers must not issue redundant writes.
	SetEnabled(enabled bool)

	// OnEnabledChanged registers h for this control's enabled-change
	// notifications. The handler runs synchronously on the host's dispatch
	// goroutine after the flag has changed.
	OnEnabledChanged(h EnabledHandler) Subscription
}

// Subscription represents an attached notification handler.
type Subscription interface {
	// Cancel detaches the handler. Safe to call more than once.
	Cancel()
}

// Container is an enumerable group of controls: the tray menu, one drop-down
// group of the main menu, or a named toolbar.
type Container interface {
	Name() string
	Controls() []Control
}

// Document is one open document in the host.
type Document interface {
	Open() bool

	// Locked reports whether the document rejects edits. There is no
	// notification for lock changes; the predicate is re-read on every
	// decision instead.
	Locked() bool
}

// DocumentManager enumerates open documents and exposes the host's
// per-document lifecycle notifications. Opened and closed fire once per
// document, not once per empty/non-empty boundary crossing.
type DocumentManager interface {
	Documents() []Document
	OnDocumentOpened(fn func()) Subscription
	OnDocumentClosed(fn func()) Subscription
}

// Context is the host surface handed to the synchronizer at initialization.
// Accessors return an error when the expected container is missing, which
// indicates an incompatible host version.
type Context interface {
	TrayMenu() (Container, error)
	MenuGroups() ([]Container, error)
	Toolbar(name string) (Container, error)
	DocumentManager() DocumentManager
}
