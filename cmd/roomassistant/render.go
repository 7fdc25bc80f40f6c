package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"roomassistant/internal/catalog"
	"roomassistant/internal/tabs"
)

// consoleRenderer draws display bundles as terminal tables. Tab chrome is
// shown for Premium sessions only; the Free default view renders bare.
type consoleRenderer struct {
	w          io.Writer
	showChrome bool
}

func newConsoleRenderer(w io.Writer, showChrome bool) *consoleRenderer {
	return &consoleRenderer{w: w, showChrome: showChrome}
}

func (r *consoleRenderer) Clear(tab tabs.Tab) {
	// Terminal output is append-only; a new fetch simply starts a new block.
}

func (r *consoleRenderer) RenderBundle(tab tabs.Tab, bundle catalog.Bundle) {
	if r.showChrome {
		fmt.Fprintf(r.w, "== %s ==\n", tab)
	}
	for _, section := range bundle {
		fmt.Fprintf(r.w, "\n%s (%d items)\n", section.Label, len(section.Items))
		fmt.Fprintln(r.w, renderItemTable(section.Items))
	}
}

func (r *consoleRenderer) RenderError(tab tabs.Tab, message string) {
	// Backend prose may carry embedded newlines meant as line breaks.
	fmt.Fprintln(r.w, message)
}

func renderItemTable(items []catalog.Item) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(table.Row{"Name", "Price", "Shop", "Code"})
	for _, item := range items {
		tw.AppendRow(table.Row{
			item.Name,
			"¥" + humanize.Comma(item.Price),
			item.ShopName,
			item.Code,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft, WidthMax: 48},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft, WidthMax: 24},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
