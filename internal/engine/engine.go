package engine

import (
	"uisync/internal/host"
	"uisync/internal/registry"
	"uisync/pkg/logging"
)

// Engine applies desired enabled values to governed controls. It holds no
// state between calls beyond write statistics; every decision re-reads the
// predicates and the control's current flag.
type Engine struct {
	reg  *registry.Registry
	pred *Predicates

	corrections map[host.Control]int
}

// New creates an engine over the given registry and predicates.
func New(reg *registry.Registry, pred *Predicates) *Engine {
	return &Engine{
		reg:         reg,
		pred:        pred,
		corrections: make(map[host.Control]int),
	}
}

// Predicates returns the engine's predicate source.
func (e *Engine) Predicates() *Predicates {
	return e.pred
}

// SetDesired writes desired to the control's enabled flag if it differs from
// the current value, bracketing the write with mute/unmute so the write does
// not re-enter the engine through the control's own change notification.
//
// The equal-value no-op is required behavior, not an optimization: the host
// treats repeated identical writes as fresh change events in some cases, so
// an unconditional write would be observable.
//
// Returns whether a write happened.
func (e *Engine) SetDesired(c host.Control, desired bool) bool {
	if c.Enabled() == desired {
		return false
	}

	e.reg.Mute(c)
	c.SetEnabled(desired)
	e.reg.Unmute(c)

	e.corrections[c]++
	logging.Debug("Engine", "Set %s -> %v", c.Name(), desired)
	return true
}

// DesiredDocument returns the policy value for document-group controls:
// enabled only while at least one open document is unlocked.
func (e *Engine) DesiredDocument() bool {
	return e.pred.AnyUnlocked()
}

// DesiredWorkspace returns the policy value for workspace-group controls:
// enabled while no document is open at all, or while one is unlocked.
func (e *Engine) DesiredWorkspace() bool {
	return !e.pred.HasDocuments() || e.pred.AnyUnlocked()
}

// ReconcileAll applies the group policies, evaluated once at call time, to
// every governed control.
func (e *Engine) ReconcileAll() {
	docDesired := e.DesiredDocument()
	wsDesired := e.DesiredWorkspace()

	for _, c := range e.reg.Document() {
		e.SetDesired(c, docDesired)
	}
	for _, c := range e.reg.Workspace() {
		e.SetDesired(c, wsDesired)
	}
}

// ReconcileControl re-asserts the group policy on a single control. Controls
// the registry does not govern are left alone.
func (e *Engine) ReconcileControl(c host.Control) {
	switch e.reg.ClassOf(c) {
	case registry.ClassDocument:
		e.SetDesired(c, e.DesiredDocument())
	case registry.ClassWorkspace:
		e.SetDesired(c, e.DesiredWorkspace())
	}
}

// CorrectionCount reports how many times the engine has written the given
// control since it was created.
func (e *Engine) CorrectionCount(c host.Control) int {
	return e.corrections[c]
}

// TotalCorrections reports the engine's total write count.
func (e *Engine) TotalCorrections() int {
	total := 0
	for _, n := range e.corrections {
		total += n
	}
	return total
}
