package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// stageTable renders the per-stage results of one run. The layout is fixed:
// stage letter, agent name, output. Only the output column wraps, so long
// stage outputs stay readable without breaking the narrow columns.
func stageTable(rows [][3]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Stage", "Agent", "Output"})
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1], row[2]})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
	})
	return tw.Render()
}
