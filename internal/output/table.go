package output

import (
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"folderorg/internal/ledger"
	"folderorg/internal/orchestrator"
)

// countRow is one line of a label/count table.
type countRow struct {
	label string
	value any
}

// renderCounts draws a two-column table with the values right-aligned.
// Headers keep their case.
func renderCounts(label, value string, rows []countRow) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{label, value})
	for _, r := range rows {
		tw.AppendRow(table.Row{r.label, r.value})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// PrintSummary writes the end-of-run counts, and in verbose mode a
// per-destination breakdown.
func (o *Output) PrintSummary(s *orchestrator.RunSummary, dryRun bool) {
	moved := countRow{"Moved", s.Moved}
	if dryRun {
		moved = countRow{"Would move", s.Simulated}
	}
	o.Info("%s", renderCounts("Result", "Count", []countRow{
		{"Files", s.Total},
		moved,
		{"Failed", s.Failed},
		{"Duration", s.Duration.Round(time.Millisecond).String()},
	}))

	if len(s.ByDestination) == 0 {
		return
	}
	names := make([]string, 0, len(s.ByDestination))
	for name := range s.ByDestination {
		names = append(names, name)
	}
	sort.Strings(names)
	rows := make([]countRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, countRow{name, s.ByDestination[name]})
	}
	o.Verbose("%s", renderCounts("Folder", "Files", rows))
}

// PrintUndo reports the outcome of an undo. Each failure is listed on
// ErrWriter.
func (o *Output) PrintUndo(r *ledger.UndoResult) {
	for _, out := range r.Outcomes {
		if out.Err != nil {
			o.Error("✗ %s: %v", out.Record.CurrentPath(), out.Err)
		}
	}
	o.Info("%s", renderCounts("Undo", "Count", []countRow{
		{"Restored", r.Restored},
		{"Failed", r.Failed},
		{"Folders removed", len(r.RemovedDirs)},
	}))
}
