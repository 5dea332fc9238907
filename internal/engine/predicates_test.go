package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uisync/internal/sim"
)

func newTestPredicates(t *testing.T) (*sim.Host, *Predicates) {
	t.Helper()
	h := sim.NewHost()
	sentinel, err := h.Control("tray", "Close All Documents")
	require.NoError(t, err)
	return h, NewPredicates(h.DocumentManager(), sentinel)
}

func TestPredicates_EmptyWorkspace(t *testing.T) {
	_, p := newTestPredicates(t)

	assert.False(t, p.AnyUnlocked())
	assert.False(t, p.HasDocuments())
	assert.False(t, p.SentinelRaised())
}

func TestPredicates_LockedOnly(t *testing.T) {
	h, p := newTestPredicates(t)

	_, err := h.Docs().OpenDocument("a", true)
	require.NoError(t, err)

	assert.False(t, p.AnyUnlocked())
	assert.True(t, p.HasDocuments())
	assert.True(t, p.SentinelRaised())
}

func TestPredicates_NeverCached(t *testing.T) {
	h, p := newTestPredicates(t)

	d, err := h.Docs().OpenDocument("a", true)
	require.NoError(t, err)
	assert.False(t, p.AnyUnlocked())

	// Lock changes fire no notification; the predicate must still see them
	// immediately on the next read.
	d.SetLocked(false)
	assert.True(t, p.AnyUnlocked())

	d.SetLocked(true)
	assert.False(t, p.AnyUnlocked())
}
