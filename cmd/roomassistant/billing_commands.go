package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newUpgradeCommand(ctx *commandContext) *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Start a Premium checkout session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.mustApp()
			url, err := app.billing.CreateCheckout(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Complete the checkout in your browser:")
			fmt.Fprintln(out, "  "+url)
			fmt.Fprintln(out, "Afterwards, pass the redirect URL you land on to `roomassistant confirm`.")
			if open {
				return systemBrowser{}.Open(url)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "Open the checkout URL in the browser")

	return cmd
}

func newConfirmCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <redirect-url>",
		Short: "Record the checkout redirect for the next dashboard start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.mustApp()
			redirect := strings.TrimSpace(args[0])
			if redirect == "" {
				return errors.New("redirect URL required")
			}
			if err := os.WriteFile(app.cfg.Paths.HandoffPath, []byte(redirect+"\n"), 0o600); err != nil {
				return fmt.Errorf("write handoff: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Recorded. The next `roomassistant dashboard` run will process it.")
			return nil
		},
	}
}

func newCancelCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the Premium subscription at the period end",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.mustApp()
			if !yes {
				return errors.New("cancellation keeps Premium until the next billing date; re-run with --yes to proceed")
			}
			return app.billing.Cancel(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the cancellation")

	return cmd
}

func newSyncCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh the plan snapshot from the billing system",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.mustApp()
			sess, err := app.billing.Sync(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan: %s\n", sess.Plan)
			return nil
		},
	}
}
