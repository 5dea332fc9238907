// Package router maps host notifications to engine recomputations.
//
// The router holds no state of its own; the two predicates are the implicit
// state machine and they are re-read inside every handler. All business
// policy lives in the engine so it stays independently testable; the router
// decides only which controls to recompute for which trigger.
package router

import (
	"uisync/internal/engine"
	"uisync/internal/host"
	"uisync/internal/registry"
	"uisync/pkg/logging"
)

// Router is the set of notification entry points attached to the host.
type Router struct {
	eng  *engine.Engine
	reg  *registry.Registry
	pred *engine.Predicates
}

// New creates a router dispatching into the given engine.
func New(eng *engine.Engine, reg *registry.Registry) *Router {
	return &Router{eng: eng, reg: reg, pred: eng.Predicates()}
}

// HandleDocumentOpened reacts to the host's per-document opened
// notification. The host fires it after raising the sentinel, so both groups
// can be force-enabled here as soon as an unlocked document exists; controls
// already enabled are untouched by the engine's no-op rule.
func (r *Router) HandleDocumentOpened() {
	if !r.pred.AnyUnlocked() {
		return
	}
	logging.Debug("Router", "Document opened, enabling governed controls")
	for _, c := range r.reg.Governed() {
		r.eng.SetDesired(c, true)
	}
}

// HandleDocumentClosed reacts to the host's per-document closed
// notification. It fires before the sentinel drops on the last close, so the
// workspace group is only forced down while documents demonstrably remain;
// the empty-workspace case is resolved by the sentinel notification instead.
// Keep this asymmetry: it compensates for the host's ordering, it is not an
// oversight.
func (r *Router) HandleDocumentClosed() {
	if r.pred.AnyUnlocked() {
		return
	}
	logging.Debug("Router", "Document closed with no unlocked document remaining")
	for _, c := range r.reg.Document() {
		r.eng.SetDesired(c, false)
	}
	if r.pred.HasDocuments() {
		for _, c := range r.reg.Workspace() {
			r.eng.SetDesired(c, false)
		}
	}
}

// HandleSentinelChanged reacts to the sentinel control's own enabled-change.
// The host flips the sentinel exactly at the empty/non-empty boundary, which
// makes this the authoritative resync point for the workspace group: its
// controls mirror "no documents open".
func (r *Router) HandleSentinelChanged(host.Control) {
	noDocs := !r.pred.SentinelRaised()
	logging.Debug("Router", "Sentinel changed, workspace controls follow no-docs=%v", noDocs)
	for _, c := range r.reg.Workspace() {
		r.eng.SetDesired(c, noDocs)
	}
}

// HandleControlChanged reacts to a governed control's own enabled-change,
// which is how external writes by third-party host code are detected and
// reverted. Notifications from controls the registry does not govern are
// ignored; the host's UI tree raises plenty of those.
func (r *Router) HandleControlChanged(c host.Control) {
	switch r.reg.ClassOf(c) {
	case registry.ClassDocument:
		r.eng.SetDesired(c, r.pred.AnyUnlocked())
	case registry.ClassWorkspace:
		// With no documents the workspace group is unconditionally
		// usable; otherwise it degenerates to the document rule.
		if !r.pred.HasDocuments() {
			r.eng.SetDesired(c, true)
		} else {
			r.eng.SetDesired(c, r.pred.AnyUnlocked())
		}
	}
}
