package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	var minPrice, maxPrice, customPrompt string
	var save bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or save price filters and the custom prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.mustApp()
			sess, err := app.requireSession()
			if err != nil {
				return err
			}

			if !save {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Plan:          %s\n", sess.Plan)
				if sess.CancelAtPeriodEnd {
					fmt.Fprintln(out, "               cancellation scheduled; usable until the period ends")
				}
				fmt.Fprintf(out, "Min price:     %s\n", orUnset(sess.PriceMin))
				fmt.Fprintf(out, "Max price:     %s\n", orUnset(sess.PriceMax))
				if sess.Plan.Premium() {
					fmt.Fprintf(out, "Custom prompt: %s\n", orUnset(sess.CustomPrompt))
				}
				return nil
			}

			if !cmd.Flags().Changed("min-price") {
				minPrice = sess.PriceMin
			}
			if !cmd.Flags().Changed("max-price") {
				maxPrice = sess.PriceMax
			}
			if !cmd.Flags().Changed("prompt") {
				customPrompt = sess.CustomPrompt
			}
			return app.billing.SaveSettings(cmd.Context(), minPrice, maxPrice, customPrompt)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the provided values")
	cmd.Flags().StringVar(&minPrice, "min-price", "", "Minimum price filter")
	cmd.Flags().StringVar(&maxPrice, "max-price", "", "Maximum price filter")
	cmd.Flags().StringVar(&customPrompt, "prompt", "", "Custom recommendation prompt (Premium only)")

	return cmd
}

func orUnset(value string) string {
	if value == "" {
		return "(unset)"
	}
	return value
}
