package sim

import (
	"github.com/google/uuid"

	"uisync/internal/host"
)

// Control is an in-memory host.Control with synchronous notification
// dispatch. Like the real host, SetEnabled notifies subscribers on every
// write, including writes that do not change the value.
type Control struct {
	name     string
	enabled  bool
	handlers map[string]host.EnabledHandler
	order    []string
	writes   int
}

// NewControl creates a control that starts out enabled, matching the host's
// default for freshly created UI items.
func NewControl(name string) *Control {
	return &Control{
		name:     name,
		enabled:  true,
		handlers: make(map[string]host.EnabledHandler),
	}
}

// Name returns the control's identity.
func (c *Control) Name() string {
	return c.name
}

// Enabled reports the current enabled flag.
func (c *Control) Enabled() bool {
	return c.enabled
}

// SetEnabled writes the flag and dispatches to every subscriber, even when
// the written value equals the current one.
func (c *Control) SetEnabled(enabled bool) {
	c.writes++
	c.enabled = enabled
	c.dispatch()
}

// setSilently adjusts the flag without dispatching. Used only while building
// the initial UI tree, before anything can have subscribed.
func (c *Control) setSilently(enabled bool) {
	c.enabled = enabled
}

func (c *Control) dispatch() {
	// Snapshot the order so handlers that subscribe or cancel during
	// dispatch do not disturb the iteration; cancelled handlers are
	// skipped via the map lookup.
	ids := make([]string, len(c.order))
	copy(ids, c.order)
	for _, id := range ids {
		if h, ok := c.handlers[id]; ok {
			h(c)
		}
	}
}

// OnEnabledChanged registers h and returns its subscription.
func (c *Control) OnEnabledChanged(h host.EnabledHandler) host.Subscription {
	id := uuid.NewString()
	c.handlers[id] = h
	c.order = append(c.order, id)
	return &subscription{control: c, id: id}
}

// SubscriberCount reports how many handlers are currently attached.
func (c *Control) SubscriberCount() int {
	return len(c.handlers)
}

// Writes reports how many times SetEnabled has been called, by anyone.
func (c *Control) Writes() int {
	return c.writes
}

type subscription struct {
	control *Control
	id      string
}

// Cancel detaches the handler. Safe to call more than once.
func (s *subscription) Cancel() {
	c := s.control
	if _, ok := c.handlers[s.id]; !ok {
		return
	}
	delete(c.handlers, s.id)
	for i, id := range c.order {
		if id == s.id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
