package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/teamboard/internal/dispatch"
)

func newRouteCmd() *cobra.Command {
	var (
		authenticated bool
		role          string
		onboarded     bool
	)
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Show where a session lands",
		Long: `Show the destination a session is sent to after sign-in.

Without flags the stored session is used. Any of --authenticated, --role or
--onboarded describes a session explicitly instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var s dispatch.Session
			flags := cmd.Flags()
			if flags.Changed("authenticated") || flags.Changed("role") || flags.Changed("onboarded") {
				s = dispatch.Session{Authenticated: authenticated, Role: role, Onboarded: onboarded}
			} else {
				a, err := newApp()
				if err != nil {
					return err
				}
				defer a.Close()
				auth, err := a.loadAuth(cmd.Context())
				if err != nil {
					return err
				}
				s = dispatch.Session{Authenticated: auth.Authenticated, Role: auth.Role, Onboarded: auth.Onboarded}
			}

			dest := dispatch.Resolve(s)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", dest, dest.Path())
			return nil
		},
	}
	cmd.Flags().BoolVar(&authenticated, "authenticated", false, "session is signed in")
	cmd.Flags().StringVar(&role, "role", "", "session role")
	cmd.Flags().BoolVar(&onboarded, "onboarded", false, "session has finished onboarding")
	return cmd
}
