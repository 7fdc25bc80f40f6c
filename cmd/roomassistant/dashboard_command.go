package main

import (
	"github.com/spf13/cobra"

	"roomassistant/internal/logging"
	"roomassistant/internal/reconcile"
	"roomassistant/internal/tabs"
)

func newDashboardCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the item feed for the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.mustApp()
			sess, err := app.requireSession()
			if err != nil {
				return err
			}

			renderer := newConsoleRenderer(cmd.OutOrStdout(), sess.Plan.Premium())
			controller := tabs.NewController(app.catalog, app.store, app.genres, &rankingSelection{cache: app.genres}, renderer, app.logger)

			// A checkout redirect saved by `confirm` is consumed exactly
			// once, here at startup, before the feed loads.
			conf, ok, err := reconcile.ConsumeHandoff(app.cfg.Paths.HandoffPath)
			if err != nil {
				app.logger.Warn("checkout handoff unreadable", logging.Error(err))
			}
			flow := reconcile.NewFlow(app.gw, app.store, app.notifier, controller, app.logger)
			flow.Run(cmd.Context(), conf, ok)

			// Reconciliation may have replaced the record; chrome follows
			// the current plan, not the one loaded above.
			if current, found, err := app.store.Load(); err == nil && found {
				renderer.showChrome = current.Plan.Premium()
			}

			<-controller.Start(cmd.Context())
			return nil
		},
	}
}
