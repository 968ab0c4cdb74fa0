package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"interlace/internal/deps"
	"interlace/internal/encode"
	"interlace/internal/segment"
)

// renderTable renders a rounded-style table. Columns listed in rightAligned
// are right-aligned (1-based); everything else, headers included, stays left.
func renderTable(headers table.Row, rows []table.Row, rightAligned ...int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(headers)
	tw.AppendRows(rows)

	configs := make([]table.ColumnConfig, 0, len(rightAligned))
	for _, col := range rightAligned {
		configs = append(configs, table.ColumnConfig{
			Number:      col,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func renderPlanTable(plan []segment.RenderedSegment, target encode.Target) string {
	rows := make([]table.Row, 0, len(plan))
	for i, entry := range plan {
		rows = append(rows, table.Row{
			i + 1,
			entry.Channel.String(),
			fmt.Sprintf("%.3f", entry.Start),
			fmt.Sprintf("%.3f", entry.End),
			fmt.Sprintf("%.3f", entry.Duration()),
		})
	}
	out := renderTable(table.Row{"#", "Channel", "Start", "End", "Length"}, rows, 1, 3, 4, 5)
	return out + "\n" + fmt.Sprintf("Final encode: %s (%s, %d-bit)", target.Codec, target.SampleFormat, target.BitDepth)
}

func renderDepsTable(statuses []deps.Status) string {
	rows := make([]table.Row, 0, len(statuses))
	for _, status := range statuses {
		state := "missing"
		if status.Available {
			state = "ok"
		} else if status.Optional {
			state = "missing (optional)"
		}
		detail := status.Detail
		if detail == "" {
			detail = status.Description
		}
		rows = append(rows, table.Row{status.Name, status.Command, state, detail})
	}
	return renderTable(table.Row{"Dependency", "Command", "State", "Detail"}, rows)
}
