package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/teamboard/internal/dispatch"
	"github.com/Iron-Ham/teamboard/internal/session"
)

func newSessionCmd() *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the local sign-in session",
	}

	var (
		role   string
		userID string
	)
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in locally",
		Long: `Sign in locally with an optional role.

Signing in without a role sends the session to role selection. Signing in
again starts onboarding over.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != "" && !dispatch.IsKnownRole(role) {
				return fmt.Errorf("unknown role %q (valid: %s)", role, strings.Join(dispatch.Roles(), ", "))
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id := userID
			if id == "" {
				id = uuid.NewString()
			}
			auth := session.Auth{Authenticated: true, UserID: id, Role: role}
			if err := a.auth.Save(cmd.Context(), auth); err != nil {
				return err
			}
			a.logger.Info("signed in", "user_id", id, "role", role)
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", id)
			return printDestination(cmd, auth)
		},
	}
	loginCmd.Flags().StringVar(&role, "role", "", "role to sign in with")
	loginCmd.Flags().StringVar(&userID, "user", "", "user id (default: a random id)")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.auth.SignOut(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			auth, err := a.loadAuth(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !auth.Authenticated {
				fmt.Fprintln(out, "Not signed in")
				return printDestination(cmd, auth)
			}
			role := auth.Role
			if role == "" {
				role = "(none)"
			}
			fmt.Fprintf(out, "User:      %s\n", auth.UserID)
			fmt.Fprintf(out, "Role:      %s\n", role)
			fmt.Fprintf(out, "Onboarded: %t\n", auth.Onboarded)
			return printDestination(cmd, auth)
		},
	}

	sessionCmd.AddCommand(loginCmd, logoutCmd, showCmd)
	return sessionCmd
}

func printDestination(cmd *cobra.Command, auth session.Auth) error {
	dest := dispatch.Resolve(dispatch.Session{
		Authenticated: auth.Authenticated,
		Role:          auth.Role,
		Onboarded:     auth.Onboarded,
	})
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Destination: %s\n", dest.Path())
	return err
}
