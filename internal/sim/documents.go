package sim

import (
	"fmt"

	"github.com/google/uuid"

	"uisync/internal/host"
)

// Document is one simulated open document.
type Document struct {
	name   string
	open   bool
	locked bool
}

// Name returns the document's name.
func (d *Document) Name() string { return d.name }

// Open reports whether the document is still open.
func (d *Document) Open() bool { return d.open }

// Locked reports whether the document rejects edits.
func (d *Document) Locked() bool { return d.locked }

// SetLocked flips the lock. Like the real host, this fires no notification;
// the change becomes visible at the next event-driven decision.
func (d *Document) SetLocked(locked bool) { d.locked = locked }

// DocumentManager simulates the host's document lifecycle, including its
// ordering quirks: the sentinel control flips before the opened notification
// and after the closed notification, and both notifications fire once per
// document rather than once per empty/non-empty boundary crossing.
type DocumentManager struct {
	docs     []*Document
	sentinel *Control

	opened      map[string]func()
	openedOrder []string
	closed      map[string]func()
	closedOrder []string
}

// NewDocumentManager creates a manager that maintains the given sentinel
// control's enabled flag as "at least one document is open".
func NewDocumentManager(sentinel *Control) *DocumentManager {
	return &DocumentManager{
		sentinel: sentinel,
		opened:   make(map[string]func()),
		closed:   make(map[string]func()),
	}
}

// Documents enumerates the open documents.
func (m *DocumentManager) Documents() []host.Document {
	out := make([]host.Document, len(m.docs))
	for i, d := range m.docs {
		out[i] = d
	}
	return out
}

// Document returns the named open document, or nil.
func (m *DocumentManager) Document(name string) *Document {
	for _, d := range m.docs {
		if d.name == name {
			return d
		}
	}
	return nil
}

// OnDocumentOpened registers fn for per-document opened notifications.
func (m *DocumentManager) OnDocumentOpened(fn func()) host.Subscription {
	id := uuid.NewString()
	m.opened[id] = fn
	m.openedOrder = append(m.openedOrder, id)
	return &managerSubscription{table: m.opened, order: &m.openedOrder, id: id}
}

// OnDocumentClosed registers fn for per-document closed notifications.
func (m *DocumentManager) OnDocumentClosed(fn func()) host.Subscription {
	id := uuid.NewString()
	m.closed[id] = fn
	m.closedOrder = append(m.closedOrder, id)
	return &managerSubscription{table: m.closed, order: &m.closedOrder, id: id}
}

// OpenDocument opens a named document. On the empty-to-non-empty boundary the
// sentinel is raised first; the opened notification fires afterwards.
func (m *DocumentManager) OpenDocument(name string, locked bool) (*Document, error) {
	if m.Document(name) != nil {
		return nil, fmt.Errorf("document %q is already open", name)
	}
	d := &Document{name: name, open: true, locked: locked}
	m.docs = append(m.docs, d)
	if len(m.docs) == 1 {
		m.sentinel.SetEnabled(true)
	}
	m.fire(m.opened, m.openedOrder)
	return d, nil
}

// CloseDocument closes a named document. The closed notification fires while
// the document list is already updated; on the last close the sentinel drops
// only after the notification, so the closed handler never sees the
// boundary directly.
func (m *DocumentManager) CloseDocument(name string) error {
	idx := -1
	for i, d := range m.docs {
		if d.name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("document %q is not open", name)
	}
	m.docs[idx].open = false
	m.docs = append(m.docs[:idx], m.docs[idx+1:]...)
	m.fire(m.closed, m.closedOrder)
	if len(m.docs) == 0 {
		m.sentinel.SetEnabled(false)
	}
	return nil
}

func (m *DocumentManager) fire(table map[string]func(), order []string) {
	ids := make([]string, len(order))
	copy(ids, order)
	for _, id := range ids {
		if fn, ok := table[id]; ok {
			fn()
		}
	}
}

type managerSubscription struct {
	table map[string]func()
	order *[]string
	id    string
}

// Cancel detaches the handler. Safe to call more than once.
func (s *managerSubscription) Cancel() {
	if _, ok := s.table[s.id]; !ok {
		return
	}
	delete(s.table, s.id)
	for i, id := range *s.order {
		if id == s.id {
			*s.order = append((*s.order)[:i], (*s.order)[i+1:]...)
			break
		}
	}
}
