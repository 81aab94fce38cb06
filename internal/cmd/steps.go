package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/teamboard/internal/mirror"
	"github.com/Iron-Ham/teamboard/internal/onboarding"
	"github.com/Iron-Ham/teamboard/internal/util"
)

func newStepsCmd() *cobra.Command {
	var (
		role     string
		flowFile string
	)
	cmd := &cobra.Command{
		Use:   "steps",
		Short: "List the steps of an onboarding flow",
		Long: `List the steps of an onboarding flow with the saved position.

Steps before the saved position are shown as done (✓), the saved step as
current (●) and the rest as pending (○).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if role == "" {
				auth, err := a.loadAuth(cmd.Context())
				if err != nil {
					return err
				}
				role = auth.Role
			}
			if flowFile == "" {
				flowFile = a.cfg.Wizard.FlowFile
			}
			if role == "" && flowFile == "" {
				return fmt.Errorf("no role selected: pass --role or --flow")
			}

			def, err := onboarding.Resolve(flowFile, role)
			if err != nil {
				return err
			}

			ids := def.IDs()
			current := -1
			if id, ok := mirror.NewFile(a.positions, def.Name).Read(); ok {
				current = slices.Index(ids, id)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%d steps)\n", def.Name, len(def.Steps))
			for i, s := range def.Steps {
				marker := "○"
				switch {
				case i < current:
					marker = "✓"
				case i == current:
					marker = "●"
				}
				label := util.Label(s.Label, s.ID)
				optional := ""
				if s.Skippable {
					optional = " (optional)"
				}
				fmt.Fprintf(out, "  %s %d. %-14s %s%s\n", marker, i+1, s.ID, label, optional)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "role whose flow to list (default: the session's role)")
	cmd.Flags().StringVar(&flowFile, "flow", "", "flow file to list instead of the built-in flow")
	return cmd
}
