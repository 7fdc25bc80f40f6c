package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"roomassistant/internal/auth"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.mustApp()
			sess, err := app.auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s plan)\n", sess.Email, sess.Plan)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newRegisterCommand(ctx *commandContext) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account (sends a confirmation mail)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.mustApp()
			message, err := app.auth.Register(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			// Backend prose, shown verbatim.
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newGoogleLoginCommand(ctx *commandContext) *cobra.Command {
	var idToken string

	cmd := &cobra.Command{
		Use:   "google-login",
		Short: "Sign in with a Google identity token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.mustApp()

			clientID, configured, err := app.auth.GoogleClientID(cmd.Context())
			if err != nil {
				return err
			}
			if !configured {
				return errors.New("google sign-in is not configured on the backend")
			}
			if idToken == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Obtain an ID token for client id %s and pass it via --id-token\n", clientID)
				return errors.New("--id-token is required")
			}

			// The identity widget's callback becomes a one-shot handoff;
			// with a flag-supplied token it resolves immediately.
			handoff := auth.NewCredentialHandoff()
			handoff.Resolve(idToken)
			credential, err := handoff.Await(cmd.Context())
			if err != nil {
				return err
			}

			sess, err := app.auth.GoogleLogin(cmd.Context(), credential)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s plan)\n", sess.Email, sess.Plan)
			return nil
		},
	}

	cmd.Flags().StringVar(&idToken, "id-token", "", "Google ID token from the sign-in widget")

	return cmd
}

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.mustApp()
			if err := app.auth.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}
