package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uisync/internal/config"
	"uisync/internal/governor"
	"uisync/internal/sim"
)

func newReplFixture(t *testing.T) (*sim.Host, *governor.Governor) {
	t.Helper()
	h := sim.NewHost()
	g, err := governor.New(h, config.Default())
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return h, g
}

func TestExecReplCommand_OpenCloseFlow(t *testing.T) {
	h, g := newReplFixture(t)
	var out bytes.Buffer

	require.NoError(t, execReplCommand(&out, h, g, []string{"open", "notes"}))

	cut, err := h.Control("Edit", "Cut")
	require.NoError(t, err)
	assert.True(t, cut.Enabled())

	require.NoError(t, execReplCommand(&out, h, g, []string{"close", "notes"}))
	assert.False(t, cut.Enabled())
}

func TestExecReplCommand_OpenLocked(t *testing.T) {
	h, g := newReplFixture(t)
	var out bytes.Buffer

	require.NoError(t, execReplCommand(&out, h, g, []string{"open", "ref", "locked"}))

	cut, err := h.Control("Edit", "Cut")
	require.NoError(t, err)
	assert.False(t, cut.Enabled())
}

func TestExecReplCommand_Toggle(t *testing.T) {
	h, g := newReplFixture(t)
	var out bytes.Buffer

	require.NoError(t, execReplCommand(&out, h, g, []string{"toggle", "Edit", "Cut", "on"}))

	// The external write was reverted synchronously.
	cut, err := h.Control("Edit", "Cut")
	require.NoError(t, err)
	assert.False(t, cut.Enabled())
}

func TestExecReplCommand_State(t *testing.T) {
	h, g := newReplFixture(t)
	var out bytes.Buffer

	require.NoError(t, execReplCommand(&out, h, g, []string{"state"}))
	assert.Contains(t, out.String(), "Cut")
	assert.Contains(t, out.String(), "Workspace")
}

func TestExecReplCommand_Errors(t *testing.T) {
	h, g := newReplFixture(t)
	var out bytes.Buffer

	assert.Error(t, execReplCommand(&out, h, g, []string{"open"}))
	assert.Error(t, execReplCommand(&out, h, g, []string{"close", "ghost"}))
	assert.Error(t, execReplCommand(&out, h, g, []string{"lock", "ghost"}))
	assert.Error(t, execReplCommand(&out, h, g, []string{"toggle", "Edit", "Cut", "maybe"}))
	assert.Error(t, execReplCommand(&out, h, g, []string{"frobnicate"}))
}

func TestExecReplCommand_LockUnlock(t *testing.T) {
	h, g := newReplFixture(t)
	var out bytes.Buffer

	require.NoError(t, execReplCommand(&out, h, g, []string{"open", "notes"}))
	require.NoError(t, execReplCommand(&out, h, g, []string{"lock", "notes"}))

	// No event fires on lock; the change surfaces at the next event. An
	// external toggle provides one.
	require.NoError(t, execReplCommand(&out, h, g, []string{"toggle", "Edit", "Cut", "on"}))
	cut, err := h.Control("Edit", "Cut")
	require.NoError(t, err)
	assert.False(t, cut.Enabled())

	require.NoError(t, execReplCommand(&out, h, g, []string{"unlock", "notes"}))
	require.NoError(t, execReplCommand(&out, h, g, []string{"toggle", "Edit", "Cut", "off"}))
	assert.True(t, cut.Enabled())
}
