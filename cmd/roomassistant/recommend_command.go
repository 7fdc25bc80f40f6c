package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"roomassistant/internal/catalog"
	"roomassistant/internal/history"
	"roomassistant/internal/recommend"
)

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var itemCode string
	var openRoom bool

	cmd := &cobra.Command{
		Use:   "recommend <item name>",
		Short: "Generate recommendation text for an item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.mustApp()
			sess, err := app.requireSession()
			if err != nil {
				return err
			}

			item := catalog.Item{Code: itemCode, Name: strings.Join(args, " ")}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Generating recommendation...")

			flow := recommend.NewFlow(app.gw, app.logger)
			text, err := flow.Generate(cmd.Context(), item, sess)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, text)

			app.withHistory(func(store *history.Store) {
				_ = store.RecordRecommendation(cmd.Context(), item.Name, text)
			})

			if openRoom {
				if itemCode == "" {
					return errors.New("--open-room requires --code")
				}
				return app.newRecommendHandoff().CopyAndOpen(text, recommend.MarketplaceURL(itemCode))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&itemCode, "code", "", "Item code, required for --open-room")
	cmd.Flags().BoolVar(&openRoom, "open-room", false, "Copy the text and open the marketplace page")

	return cmd
}
