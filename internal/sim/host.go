package sim

import (
	"fmt"

	"uisync/internal/host"
)

// Container is an in-memory host.Container.
type Container struct {
	name     string
	controls []*Control
}

// NewContainer creates a container holding controls with the given names.
func NewContainer(name string, controlNames ...string) *Container {
	c := &Container{name: name}
	for _, n := range controlNames {
		c.controls = append(c.controls, NewControl(n))
	}
	return c
}

// Name returns the container's name.
func (c *Container) Name() string { return c.name }

// Controls enumerates the container's controls.
func (c *Container) Controls() []host.Control {
	out := make([]host.Control, len(c.controls))
	for i, ctrl := range c.controls {
		out[i] = ctrl
	}
	return out
}

// Control returns the named control, or nil.
func (c *Container) Control(name string) *Control {
	for _, ctrl := range c.controls {
		if ctrl.name == name {
			return ctrl
		}
	}
	return nil
}

// Host is a complete in-memory host.Context: a tray menu, main-menu groups,
// a standard toolbar, and a document manager wired to the tray's
// "Close All Documents" sentinel item.
type Host struct {
	tray     *Container
	groups   []*Container
	toolbars map[string]*Container
	docs     *DocumentManager
}

// NewHost builds a host with the UI tree current host versions ship.
func NewHost() *Host {
	h := &Host{
		tray: NewContainer("tray",
			"New Document", "Open Document", "Import Archive",
			"Close All Documents", "Save All", "Settings", "Exit"),
		groups: []*Container{
			NewContainer("File",
				"New Document", "Open Document", "Recent Documents",
				"Save", "Save All", "Exit"),
			NewContainer("Edit",
				"Cut", "Copy", "Paste", "Delete"),
			NewContainer("Help",
				"Documentation", "Report a Problem", "About"),
		},
		toolbars: map[string]*Container{
			"standard": NewContainer("standard",
				"New Document", "Open Document", "Undo", "Redo"),
		},
	}

	sentinel := h.tray.Control("Close All Documents")
	// The workspace starts empty, so the host keeps its indicator lowered.
	sentinel.setSilently(false)
	h.docs = NewDocumentManager(sentinel)
	return h
}

// TrayMenu returns the tray menu container.
func (h *Host) TrayMenu() (host.Container, error) {
	if h.tray == nil {
		return nil, fmt.Errorf("tray menu not present")
	}
	return h.tray, nil
}

// MenuGroups returns the main menu's drop-down groups.
func (h *Host) MenuGroups() ([]host.Container, error) {
	out := make([]host.Container, len(h.groups))
	for i, g := range h.groups {
		out[i] = g
	}
	return out, nil
}

// Toolbar returns the named toolbar.
func (h *Host) Toolbar(name string) (host.Container, error) {
	tb, ok := h.toolbars[name]
	if !ok {
		return nil, fmt.Errorf("toolbar %q not present", name)
	}
	return tb, nil
}

// DocumentManager returns the host's document manager.
func (h *Host) DocumentManager() host.DocumentManager {
	return h.docs
}

// Docs returns the concrete document manager for driving the simulation.
func (h *Host) Docs() *DocumentManager {
	return h.docs
}

// Control looks up a control by container and name. Container is "tray", a
// menu group name, or a toolbar name.
func (h *Host) Control(container, name string) (*Control, error) {
	if ctr := h.container(container); ctr != nil {
		if c := ctr.Control(name); c != nil {
			return c, nil
		}
		return nil, fmt.Errorf("no control %q in container %q", name, container)
	}
	return nil, fmt.Errorf("no container %q", container)
}

func (h *Host) container(name string) *Container {
	if name == "tray" {
		return h.tray
	}
	for _, g := range h.groups {
		if g.name == name {
			return g
		}
	}
	return h.toolbars[name]
}

// RemoveTray drops the tray menu, simulating an incompatible host build.
func (h *Host) RemoveTray() {
	h.tray = nil
}
