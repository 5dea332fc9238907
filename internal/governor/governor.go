package governor

import (
	"fmt"

	"uisync/internal/config"
	"uisync/internal/engine"
	"uisync/internal/host"
	"uisync/internal/registry"
	"uisync/internal/router"
	"uisync/pkg/logging"
)

// Governor owns the synchronizer's lifecycle against one host context.
type Governor struct {
	reg *registry.Registry
	eng *engine.Engine
	rt  *router.Router

	// subs holds the sentinel and document-lifecycle subscriptions; the
	// per-control subscriptions live in the registry.
	subs []host.Subscription

	closed bool
}

// New classifies the host UI tree, attaches every subscription, and applies
// the initial policy. On error nothing is left subscribed: classification is
// the only step that can fail, and it runs before the first attach.
func New(hc host.Context, cfg config.Config) (*Governor, error) {
	reg, err := registry.Build(hc, cfg)
	if err != nil {
		return nil, fmt.Errorf("host classification failed: %w", err)
	}

	dm := hc.DocumentManager()
	eng := engine.New(reg, engine.NewPredicates(dm, reg.Sentinel()))
	rt := router.New(eng, reg)

	g := &Governor{reg: reg, eng: eng, rt: rt}

	for _, c := range reg.Governed() {
		reg.Listen(c, rt.HandleControlChanged)
	}
	g.subs = append(g.subs,
		reg.Sentinel().OnEnabledChanged(rt.HandleSentinelChanged),
		dm.OnDocumentOpened(rt.HandleDocumentOpened),
		dm.OnDocumentClosed(rt.HandleDocumentClosed),
	)

	eng.ReconcileAll()

	logging.Info("Governor", "Attached to host: %d governed controls", len(reg.Governed()))
	return g, nil
}

// Close detaches every subscription, force-enables every governed control,
// and clears the registry. Governed controls are left enabled regardless of
// policy so the host stays fully usable once nothing is there to keep the
// flags current. Safe to call twice.
func (g *Governor) Close() {
	if g.closed {
		return
	}
	g.closed = true

	for _, s := range g.subs {
		s.Cancel()
	}
	g.subs = nil

	g.reg.MuteAll()
	for _, c := range g.reg.Governed() {
		if !c.Enabled() {
			c.SetEnabled(true)
		}
	}
	g.reg.Clear()

	logging.Info("Governor", "Detached from host")
}

// ControlState is one governed control's view for status output.
type ControlState struct {
	Name        string
	Class       registry.Classification
	Enabled     bool
	Corrections int
}

// Snapshot reports every governed control's current state, document group
// first. Empty after Close.
func (g *Governor) Snapshot() []ControlState {
	governed := g.reg.Governed()
	out := make([]ControlState, 0, len(governed))
	for _, c := range governed {
		out = append(out, ControlState{
			Name:        c.Name(),
			Class:       g.reg.ClassOf(c),
			Enabled:     c.Enabled(),
			Corrections: g.eng.CorrectionCount(c),
		})
	}
	return out
}

// TotalCorrections reports how many corrective writes have been issued since
// the governor attached.
func (g *Governor) TotalCorrections() int {
	return g.eng.TotalCorrections()
}
