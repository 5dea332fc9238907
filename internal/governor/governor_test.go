package governor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uisync/internal/config"
	"uisync/internal/registry"
	"uisync/internal/sim"
)

func newGoverned(t *testing.T) (*sim.Host, *Governor) {
	t.Helper()
	h := sim.NewHost()
	g, err := New(h, config.Default())
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return h, g
}

// assertConverged checks the core guarantee: every governed control matches
// its group policy for the current document state.
func assertConverged(t *testing.T, h *sim.Host, g *Governor) {
	t.Helper()

	anyUnlocked := false
	hasDocs := false
	for _, d := range h.DocumentManager().Documents() {
		if d.Open() {
			hasDocs = true
			if !d.Locked() {
				anyUnlocked = true
			}
		}
	}

	wantDocument := anyUnlocked
	wantWorkspace := !hasDocs || anyUnlocked

	for _, s := range g.Snapshot() {
		switch s.Class {
		case registry.ClassDocument:
			assert.Equal(t, wantDocument, s.Enabled, "document control %s", s.Name)
		case registry.ClassWorkspace:
			assert.Equal(t, wantWorkspace, s.Enabled, "workspace control %s", s.Name)
		}
	}
}

func TestInitialState_EmptyWorkspace(t *testing.T) {
	h, g := newGoverned(t)

	// Scenario: zero documents. Document controls disabled, workspace
	// controls enabled.
	for _, s := range g.Snapshot() {
		switch s.Class {
		case registry.ClassDocument:
			assert.False(t, s.Enabled, "document control %s", s.Name)
		case registry.ClassWorkspace:
			assert.True(t, s.Enabled, "workspace control %s", s.Name)
		}
	}
	assertConverged(t, h, g)
}

func TestOpenUnlockedDocument_EnablesEverything(t *testing.T) {
	h, g := newGoverned(t)

	_, err := h.Docs().OpenDocument("notes", false)
	require.NoError(t, err)

	for _, s := range g.Snapshot() {
		assert.True(t, s.Enabled, "control %s", s.Name)
	}
	assertConverged(t, h, g)
}

func TestSecondLockedDocument_NoChange(t *testing.T) {
	h, g := newGoverned(t)
	docs := h.Docs()

	_, err := docs.OpenDocument("notes", false)
	require.NoError(t, err)

	writesBefore := governedWrites(h, g)
	_, err = docs.OpenDocument("reference", true)
	require.NoError(t, err)

	// The unlocked predicate stays true: no governed control moves, and no
	// write is issued at all.
	assert.Equal(t, writesBefore, governedWrites(h, g))
	assertConverged(t, h, g)
}

func TestCloseUnlockedWhileLockedRemains_DisablesBothGroups(t *testing.T) {
	h, g := newGoverned(t)
	docs := h.Docs()

	_, err := docs.OpenDocument("notes", false)
	require.NoError(t, err)
	_, err = docs.OpenDocument("reference", true)
	require.NoError(t, err)

	require.NoError(t, docs.CloseDocument("notes"))

	// Only the locked document remains: both groups end disabled.
	for _, s := range g.Snapshot() {
		assert.False(t, s.Enabled, "control %s", s.Name)
	}
	assertConverged(t, h, g)
}

func TestCloseLastDocument_WorkspaceResolvedBySentinel(t *testing.T) {
	h, g := newGoverned(t)
	docs := h.Docs()

	_, err := docs.OpenDocument("notes", false)
	require.NoError(t, err)

	// Everything is enabled now; count workspace writes before the close.
	newDoc, err := h.Control("tray", "New Document")
	require.NoError(t, err)
	writesBefore := newDoc.Writes()

	require.NoError(t, docs.CloseDocument("notes"))

	for _, s := range g.Snapshot() {
		switch s.Class {
		case registry.ClassDocument:
			assert.False(t, s.Enabled, "document control %s", s.Name)
		case registry.ClassWorkspace:
			assert.True(t, s.Enabled, "workspace control %s", s.Name)
		}
	}

	// The workspace control was already enabled and the closed handler left
	// it alone; the sentinel path found nothing to change either. No write
	// may have touched it.
	assert.Equal(t, writesBefore, newDoc.Writes(),
		"workspace control must be resolved by the sentinel path without churn")
	assertConverged(t, h, g)
}

func TestExternalWrite_IsRevertedImmediately(t *testing.T) {
	h, g := newGoverned(t)

	cut, err := h.Control("Edit", "Cut")
	require.NoError(t, err)
	require.False(t, cut.Enabled(), "no documents: document controls start disabled")

	// Third-party code enables the control behind the synchronizer's back.
	cut.SetEnabled(true)

	assert.False(t, cut.Enabled(), "external write must be reverted synchronously")
	assertConverged(t, h, g)
}

func TestExternalWrite_WorkspaceControlWithLockedDocument(t *testing.T) {
	h, g := newGoverned(t)

	_, err := h.Docs().OpenDocument("reference", true)
	require.NoError(t, err)

	newDoc, err := h.Control("File", "New Document")
	require.NoError(t, err)
	require.False(t, newDoc.Enabled())

	newDoc.SetEnabled(true)
	assert.False(t, newDoc.Enabled())
	assertConverged(t, h, g)
}

func TestConvergence_EventSequences(t *testing.T) {
	type event struct {
		open   string
		locked bool
		close  string
		toggle string // "container/control" written to the opposite of its current value
	}

	sequences := map[string][]event{
		"open close reopen": {
			{open: "a"},
			{close: "a"},
			{open: "b", locked: true},
			{open: "c"},
			{close: "c"},
			{close: "b"},
		},
		"toggles between transitions": {
			{toggle: "Edit/Cut"},
			{open: "a", locked: true},
			{toggle: "tray/New Document"},
			{open: "b"},
			{toggle: "Edit/Paste"},
			{close: "a"},
			{toggle: "standard/Undo"},
			{close: "b"},
			{toggle: "File/Save"},
		},
		"locked churn": {
			{open: "a", locked: true},
			{open: "b", locked: true},
			{close: "a"},
			{close: "b"},
			{open: "c"},
		},
	}

	for name, seq := range sequences {
		t.Run(name, func(t *testing.T) {
			h, g := newGoverned(t)
			docs := h.Docs()
			for _, ev := range seq {
				switch {
				case ev.open != "":
					_, err := docs.OpenDocument(ev.open, ev.locked)
					require.NoError(t, err)
				case ev.close != "":
					require.NoError(t, docs.CloseDocument(ev.close))
				case ev.toggle != "":
					container, control, ok := splitPath(ev.toggle)
					require.True(t, ok)
					c, err := h.Control(container, control)
					require.NoError(t, err)
					c.SetEnabled(!c.Enabled())
				}
				// After every handler returns, the tree is converged.
				assertConverged(t, h, g)
			}
		})
	}
}

func TestClose_FailOpen(t *testing.T) {
	h := sim.NewHost()
	g, err := New(h, config.Default())
	require.NoError(t, err)

	// Empty workspace: document controls are disabled by policy.
	cut, err := h.Control("Edit", "Cut")
	require.NoError(t, err)
	require.False(t, cut.Enabled())

	snapshot := g.Snapshot()
	g.Close()

	// Every previously governed control ends enabled, policy or not.
	for _, s := range snapshot {
		c := findControl(t, h, s.Name)
		assert.True(t, c.Enabled(), "control %s must be fail-open after Close", s.Name)
	}

	// Nothing is listening anymore: external writes stick.
	cut.SetEnabled(false)
	assert.False(t, cut.Enabled())

	// And document events change nothing.
	_, err = h.Docs().OpenDocument("a", false)
	require.NoError(t, err)
	assert.False(t, cut.Enabled())
}

func TestClose_Idempotent(t *testing.T) {
	h := sim.NewHost()
	g, err := New(h, config.Default())
	require.NoError(t, err)

	g.Close()
	g.Close()

	assert.Empty(t, g.Snapshot())
}

func TestClose_DetachesAllSubscriptions(t *testing.T) {
	h := sim.NewHost()
	g, err := New(h, config.Default())
	require.NoError(t, err)

	g.Close()

	sentinel, err := h.Control("tray", "Close All Documents")
	require.NoError(t, err)
	assert.Equal(t, 0, sentinel.SubscriberCount())

	cut, err := h.Control("Edit", "Cut")
	require.NoError(t, err)
	assert.Equal(t, 0, cut.SubscriberCount())
}

func TestNew_FailureLeavesNoSubscriptions(t *testing.T) {
	h := sim.NewHost()
	cfg := config.Default()
	cfg.Toolbar = "nonexistent"

	_, err := New(h, cfg)
	require.Error(t, err)

	cut, err2 := h.Control("Edit", "Cut")
	require.NoError(t, err2)
	assert.Equal(t, 0, cut.SubscriberCount())

	sentinel, err2 := h.Control("tray", "Close All Documents")
	require.NoError(t, err2)
	assert.Equal(t, 0, sentinel.SubscriberCount())
}

func TestNew_SentinelMissing(t *testing.T) {
	h := sim.NewHost()
	cfg := config.Default()
	cfg.Sentinel = "No Such Item"

	_, err := New(h, cfg)
	assert.ErrorIs(t, err, registry.ErrSentinelMissing)
}

func TestSnapshot_ReportsCorrections(t *testing.T) {
	h, g := newGoverned(t)

	cut, err := h.Control("Edit", "Cut")
	require.NoError(t, err)

	cut.SetEnabled(true) // reverted by the synchronizer

	for _, s := range g.Snapshot() {
		if s.Name == "Cut" && s.Class == registry.ClassDocument {
			// One write at init (enabled -> disabled), one revert now.
			assert.Equal(t, 2, s.Corrections)
		}
	}
	assert.Greater(t, g.TotalCorrections(), 0)
}

func governedWrites(h *sim.Host, g *Governor) int {
	total := 0
	for _, s := range g.Snapshot() {
		total += findControlWrites(h, s.Name)
	}
	return total
}

func findControlWrites(h *sim.Host, name string) int {
	total := 0
	for _, container := range []string{"tray", "File", "Edit", "Help", "standard"} {
		if c, err := h.Control(container, name); err == nil {
			total += c.Writes()
		}
	}
	return total
}

func findControl(t *testing.T, h *sim.Host, name string) *sim.Control {
	t.Helper()
	for _, container := range []string{"tray", "File", "Edit", "Help", "standard"} {
		if c, err := h.Control(container, name); err == nil {
			return c
		}
	}
	t.Fatalf("control %s not found in any container", name)
	return nil
}

func splitPath(path string) (container, control string, ok bool) {
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			return path[:i], path[i+1:], true
		}
	}
	return "", "", false
}
