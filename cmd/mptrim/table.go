package main

import (
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"mptrim/internal/history"
)

// renderHistoryTable renders the run ledger newest-first: one row per run,
// numeric columns right-aligned, byte counts digit-grouped.
func renderHistoryTable(records []history.Record) string {
	p := message.NewPrinter(language.English)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Finished", "Input", "Mode", "State", "Spans", "Removed", "Size"})

	for _, rec := range records {
		size := p.Sprintf("%d B", rec.InputBytes)
		if rec.OutputBytes > 0 {
			size = p.Sprintf("%d B → %d B", rec.InputBytes, rec.OutputBytes)
		}
		tw.AppendRow(table.Row{
			rec.FinishedAt.Local().Format(time.DateTime),
			filepath.Base(rec.InputPath),
			rec.Mode,
			rec.State,
			p.Sprintf("%d", rec.KeepCount),
			p.Sprintf("%.1fs", rec.RemovedSeconds),
			size,
		})
	}

	configs := make([]table.ColumnConfig, 0, 3)
	for _, number := range []int{5, 6, 7} {
		configs = append(configs, table.ColumnConfig{
			Number:      number,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
