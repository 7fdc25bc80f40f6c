package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"roomassistant/internal/catalog"
	"roomassistant/internal/history"
	"roomassistant/internal/tabs"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var urlMode bool
	var minPrice, maxPrice string

	cmd := &cobra.Command{
		Use:   "search <keyword or URL text>",
		Short: "Search the catalog by keyword, or extract an item from a URL",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.mustApp()
			sess, err := app.requireSession()
			if err != nil {
				return err
			}

			input := strings.Join(args, " ")
			var query catalog.Query
			if urlMode {
				extracted, ok := catalog.NewURLQuery(input)
				if !ok {
					return errors.New("no URL found in the input")
				}
				query = extracted
			} else {
				query = catalog.NewKeywordQuery(input, catalog.PriceFilter{Min: minPrice, Max: maxPrice})
			}

			renderer := newConsoleRenderer(cmd.OutOrStdout(), sess.Plan.Premium())
			controller := tabs.NewController(app.catalog, app.store, app.genres, &rankingSelection{cache: app.genres}, renderer, app.logger)

			<-controller.SubmitSearch(cmd.Context(), query)

			app.withHistory(func(store *history.Store) {
				_ = store.RecordSearch(cmd.Context(), string(query.Mode), query.Keyword)
			})
			return nil
		},
	}

	cmd.Flags().BoolVar(&urlMode, "url", false, "Treat the input as a product page URL")
	cmd.Flags().StringVar(&minPrice, "min-price", "", "Minimum price filter (keyword mode only)")
	cmd.Flags().StringVar(&maxPrice, "max-price", "", "Maximum price filter (keyword mode only)")

	return cmd
}
