package cmd

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"uisync/internal/governor"
)

// renderState prints the governed controls as a table: name, group, current
// enabled flag, and how often the engine has had to write the control.
func renderState(out io.Writer, states []governor.ControlState) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Control", "Group", "Enabled", "Corrections"})
	for _, s := range states {
		t.AppendRow(table.Row{s.Name, s.Class.String(), s.Enabled, s.Corrections})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
