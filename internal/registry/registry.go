package registry

import (
	"errors"
	"fmt"

	"uisync/internal/config"
	"uisync/internal/host"
	"uisync/pkg/logging"
)

// Classification is the outcome of the one-time startup walk over the host
// UI tree. Membership never changes after Build until Clear.
type Classification int

const (
	// ClassUnknown marks a control the registry has never seen. Change
	// notifications from such controls are ignored.
	ClassUnknown Classification = iota

	// ClassDocument controls are enabled only while at least one open
	// document is unlocked. This is the default for unrecognized items.
	ClassDocument

	// ClassWorkspace controls are enabled while no document is open at
	// all, or while at least one open document is unlocked.
	ClassWorkspace

	// ClassSentinel is the host-owned has-documents indicator. It is read
	// and subscribed to, never written.
	ClassSentinel

	// ClassIgnored controls are never touched.
	ClassIgnored
)

// String makes Classification satisfy the fmt.Stringer interface.
func (c Classification) String() string {
	switch c {
	case ClassDocument:
		return "Document"
	case ClassWorkspace:
		return "Workspace"
	case ClassSentinel:
		return "Sentinel"
	case ClassIgnored:
		return "Ignored"
	default:
		return "Unknown"
	}
}

// ErrSentinelMissing indicates the tray menu holds no item with the
// configured sentinel name. Without the sentinel there is no reliable
// empty/non-empty boundary signal and no safe degraded mode exists.
var ErrSentinelMissing = errors.New("sentinel control not found in tray menu")

// binding tracks one governed control's live change subscription.
type binding struct {
	class   Classification
	handler host.EnabledHandler
	sub     host.Subscription
}

// Registry holds the classified control collections and the subscription
// table. It is built once at initialization; after that, membership is
// immutable and only the subscription state changes (mute/unmute around
// corrective writes, full detach at teardown).
type Registry struct {
	document  []host.Control
	workspace []host.Control
	sentinel  host.Control
	bindings  map[host.Control]*binding
}

// Build walks the tray menu, every main-menu group, and the configured
// toolbar, classifying each item by identity. It fails without touching any
// subscription when a required container or the sentinel cannot be located.
func Build(hc host.Context, cfg config.Config) (*Registry, error) {
	r := &Registry{bindings: make(map[host.Control]*binding)}

	tray, err := hc.TrayMenu()
	if err != nil {
		return nil, fmt.Errorf("tray menu unavailable: %w", err)
	}
	groups, err := hc.MenuGroups()
	if err != nil {
		return nil, fmt.Errorf("main menu unavailable: %w", err)
	}
	toolbar, err := hc.Toolbar(cfg.Toolbar)
	if err != nil {
		return nil, fmt.Errorf("toolbar %q unavailable: %w", cfg.Toolbar, err)
	}

	r.classifyContainer(tray, cfg, true)
	for _, g := range groups {
		r.classifyContainer(g, cfg, false)
	}
	r.classifyContainer(toolbar, cfg, false)

	if r.sentinel == nil {
		return nil, ErrSentinelMissing
	}

	logging.Info("Registry", "Classified %d document, %d workspace controls (%d total governed)",
		len(r.document), len(r.workspace), len(r.document)+len(r.workspace))
	return r, nil
}

func (r *Registry) classifyContainer(ctr host.Container, cfg config.Config, isTray bool) {
	rules := cfg.Containers[ctr.Name()]
	for _, c := range ctr.Controls() {
		class := classify(rules, c.Name())
		if isTray && c.Name() == cfg.Sentinel {
			class = ClassSentinel
		}
		switch class {
		case ClassDocument:
			r.document = append(r.document, c)
			r.bindings[c] = &binding{class: ClassDocument}
		case ClassWorkspace:
			r.workspace = append(r.workspace, c)
			r.bindings[c] = &binding{class: ClassWorkspace}
		case ClassSentinel:
			r.sentinel = c
		case ClassIgnored:
			logging.Debug("Registry", "Ignoring %s/%s", ctr.Name(), c.Name())
		}
	}
}

// classify resolves an item name against one container's rules. Unrecognized
// items default to the document group on purpose: a control we have never
// heard of is safer disabled alongside document commands than permanently
// enabled.
func classify(rules config.ContainerRules, item string) Classification {
	for _, name := range rules.Ignored {
		if name == item {
			return ClassIgnored
		}
	}
	for _, name := range rules.Workspace {
		if name == item {
			return ClassWorkspace
		}
	}
	return ClassDocument
}

// Document returns the controls enabled only while an unlocked document is open.
func (r *Registry) Document() []host.Control {
	return r.document
}

// Workspace returns the controls enabled while the workspace is empty or an
// unlocked document is open.
func (r *Registry) Workspace() []host.Control {
	return r.workspace
}

// Sentinel returns the host's has-documents indicator control.
func (r *Registry) Sentinel() host.Control {
	return r.sentinel
}

// Governed returns every governed control, document group first.
func (r *Registry) Governed() []host.Control {
	out := make([]host.Control, 0, len(r.document)+len(r.workspace))
	out = append(out, r.document...)
	out = append(out, r.workspace...)
	return out
}

// ClassOf reports how a control was classified. Controls the registry never
// saw (including the sentinel and ignored items) report ClassUnknown or their
// non-governed class; only ClassDocument and ClassWorkspace controls carry
// subscriptions.
func (r *Registry) ClassOf(c host.Control) Classification {
	if c == nil {
		return ClassUnknown
	}
	if c == r.sentinel {
		return ClassSentinel
	}
	b, ok := r.bindings[c]
	if !ok {
		return ClassUnknown
	}
	return b.class
}

// Listen attaches h as the control's change handler and records the
// subscription. Attaching to an already-listening control replaces the stored
// handler but keeps the live subscription, so Listen is idempotent.
func (r *Registry) Listen(c host.Control, h host.EnabledHandler) {
	b, ok := r.bindings[c]
	if !ok {
		return
	}
	b.handler = h
	if b.sub == nil {
		b.sub = c.OnEnabledChanged(h)
	}
}

// Mute detaches the control's change handler. Safe to call when the control
// is already muted or was never listened to.
func (r *Registry) Mute(c host.Control) {
	b, ok := r.bindings[c]
	if !ok || b.sub == nil {
		return
	}
	b.sub.Cancel()
	b.sub = nil
}

// Unmute re-attaches the handler stored by the last Listen call. A control
// without a stored handler stays silent.
func (r *Registry) Unmute(c host.Control) {
	b, ok := r.bindings[c]
	if !ok || b.sub != nil || b.handler == nil {
		return
	}
	b.sub = c.OnEnabledChanged(b.handler)
}

// MuteAll detaches every live subscription. Idempotent.
func (r *Registry) MuteAll() {
	for c := range r.bindings {
		r.Mute(c)
	}
}

// Clear detaches every subscription and empties the registry. The registry
// is unusable afterwards; Build creates a fresh one.
func (r *Registry) Clear() {
	r.MuteAll()
	r.document = nil
	r.workspace = nil
	r.sentinel = nil
	r.bindings = make(map[host.Control]*binding)
}
