package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newGenresCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List the catalog genre taxonomy",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.mustApp()
			list, err := app.genres.EnsureLoaded(cmd.Context())
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"ID", "Name"})
			for _, genre := range list {
				tw.AppendRow(table.Row{genre.ID.String(), genre.Name})
			}
			fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
			return nil
		},
	}
}
