package main

import (
	"errors"

	"github.com/spf13/cobra"

	"roomassistant/internal/catalog"
	"roomassistant/internal/genres"
	"roomassistant/internal/tabs"
)

// rankingSelection supplies the ranking inputs the controller reads at
// fetch time, sourced from command flags.
type rankingSelection struct {
	cache   *genres.Cache
	genreID string
	filter  catalog.PriceFilter
}

func (s *rankingSelection) RankingSelection() (string, string, catalog.PriceFilter) {
	name := s.genreID
	if genre, ok := s.cache.Lookup(s.genreID); ok {
		name = genre.Name
	}
	return s.genreID, name, s.filter
}

func newRankingCommand(ctx *commandContext) *cobra.Command {
	var genreID string
	var minPrice, maxPrice string

	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Show the ranked item list for a genre",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.mustApp()
			sess, err := app.requireSession()
			if err != nil {
				return err
			}

			if genreID == "" {
				list, err := app.genres.EnsureLoaded(cmd.Context())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					return errors.New("no genres available")
				}
				genreID = list[0].ID.String()
			}

			selection := &rankingSelection{
				cache:   app.genres,
				genreID: genreID,
				filter:  catalog.PriceFilter{Min: minPrice, Max: maxPrice},
			}
			renderer := newConsoleRenderer(cmd.OutOrStdout(), sess.Plan.Premium())
			controller := tabs.NewController(app.catalog, app.store, app.genres, selection, renderer, app.logger)

			<-controller.SwitchTo(cmd.Context(), tabs.TabRanking)
			return nil
		},
	}

	cmd.Flags().StringVar(&genreID, "genre", "", "Genre id (defaults to the first genre)")
	cmd.Flags().StringVar(&minPrice, "min-price", "", "Minimum price filter")
	cmd.Flags().StringVar(&maxPrice, "max-price", "", "Maximum price filter")

	return cmd
}
