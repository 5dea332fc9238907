package engine

import "uisync/internal/host"

// Predicates answers the document-state questions every decision is based on.
// Answers are computed from the host on every call and never cached: a cached
// copy would go stale between the host's own ordering quirks and reintroduce
// the races the corrective handlers exist to win.
type Predicates struct {
	docs     host.DocumentManager
	sentinel host.Control
}

// NewPredicates creates predicates over the given document manager and
// sentinel control.
func NewPredicates(docs host.DocumentManager, sentinel host.Control) *Predicates {
	return &Predicates{docs: docs, sentinel: sentinel}
}

// AnyUnlocked reports whether at least one open document is unlocked.
func (p *Predicates) AnyUnlocked() bool {
	for _, d := range p.docs.Documents() {
		if d.Open() && !d.Locked() {
			return true
		}
	}
	return false
}

// HasDocuments reports whether at least one document is open, according to
// the document manager's current enumeration.
func (p *Predicates) HasDocuments() bool {
	for _, d := range p.docs.Documents() {
		if d.Open() {
			return true
		}
	}
	return false
}

// SentinelRaised reports the sentinel control's enabled flag: the host's own
// "at least one document is open" signal. The host flips it ahead of the
// document-opened notification and behind document-closed, which makes it the
// only trigger that fires exactly at the empty/non-empty boundary.
func (p *Predicates) SentinelRaised() bool {
	return p.sentinel.Enabled()
}
