package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"roomassistant/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent searches and generated recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.mustApp()
			store, err := history.Open(app.cfg.Paths.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"When", "Kind", "Subject"})
			for _, entry := range entries {
				tw.AppendRow(table.Row{
					entry.CreatedAt.Local().Format("2006-01-02 15:04"),
					string(entry.Kind),
					entry.Subject,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum entries to show")

	return cmd
}
