package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Iron-Ham/teamboard/internal/config"
	"github.com/Iron-Ham/teamboard/internal/dispatch"
	"github.com/Iron-Ham/teamboard/internal/errors"
	"github.com/Iron-Ham/teamboard/internal/flow"
	"github.com/Iron-Ham/teamboard/internal/mirror"
	"github.com/Iron-Ham/teamboard/internal/onboarding"
	"github.com/Iron-Ham/teamboard/internal/tui"
	"github.com/Iron-Ham/teamboard/internal/tui/styles"
	"github.com/Iron-Ham/teamboard/internal/wizard"
)

type onboardOptions struct {
	role       string
	flowFile   string
	resumeFrom string
	resumeURL  string
	reset      bool
	noTUI      bool
}

func newOnboardCmd() *cobra.Command {
	var opts onboardOptions
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Run the onboarding wizard for your role",
		Long: `Run the onboarding wizard for the signed-in user's role.

Progress is mirrored after every step (see wizard.mirror), so an interrupted
wizard resumes where it stopped. In a terminal the wizard runs full screen;
otherwise it reads one answer per line from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnboard(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.role, "role", "", "role whose flow to run (default: the session's role)")
	cmd.Flags().StringVar(&opts.flowFile, "flow", "", "flow file to run instead of the built-in flow")
	cmd.Flags().StringVar(&opts.resumeFrom, "resume-from", "", "start at this step, treating earlier steps as complete")
	cmd.Flags().StringVar(&opts.resumeURL, "resume-url", "", "resume link printed by a previous run (query mirror)")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "forget the saved position and start over")
	cmd.Flags().BoolVar(&opts.noTUI, "no-tui", false, "read answers line by line even in a terminal")
	return cmd
}

func runOnboard(cmd *cobra.Command, opts onboardOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	auth, err := a.loadAuth(ctx)
	if err != nil {
		return err
	}
	role := opts.role
	if role == "" {
		role = auth.Role
	}
	flowFile := opts.flowFile
	if flowFile == "" {
		flowFile = a.cfg.Wizard.FlowFile
	}
	if role == "" && flowFile == "" {
		return fmt.Errorf("no role selected: run 'teamboard session login --role <role>' or pass --role")
	}

	def, err := onboarding.Resolve(flowFile, role)
	if err != nil {
		return err
	}

	m, err := newMirror(a, def, opts)
	if err != nil {
		return err
	}

	logger := a.logger.WithFlow(def.Name)
	run, err := onboarding.Start(def, flow.NewCatalog(),
		wizard.WithMirror(m),
		wizard.WithLogger(logger),
		wizard.WithEventBus(a.bus),
	)
	if err != nil {
		return err
	}
	defer run.Controller.Close()

	var finished bool
	if !opts.noTUI && isTerminal(cmd.InOrStdin()) && isTerminal(out) {
		styles.SetActiveTheme(styles.ThemeName(a.cfg.TUI.Theme))
		finished, err = tui.Run(ctx, run, tui.WithWidth(terminalWidth(out)))
	} else {
		finished, err = onboarding.RunLines(ctx, run, cmd.InOrStdin(), out)
	}
	if err != nil {
		return err
	}

	if !finished {
		reportProgress(out, run, m)
		return nil
	}

	if err := onboarding.Complete(ctx, a.auth); err != nil {
		return err
	}
	if f, ok := m.(*mirror.File); ok {
		if err := f.Clear(); err != nil {
			logger.Warn("failed to clear saved position", "error", err.Error())
		}
	}

	fmt.Fprintln(out)
	for _, e := range run.Summary() {
		fmt.Fprintf(out, "  %-16s %s\n", e.Label+":", e.Answer)
	}
	auth, err = a.loadAuth(ctx)
	if err != nil {
		return err
	}
	dest := dispatch.Resolve(dispatch.Session{Authenticated: auth.Authenticated, Role: auth.Role, Onboarded: auth.Onboarded})
	fmt.Fprintf(out, "Next: %s\n", dest.Path())
	return nil
}

// newMirror picks the position mirror for this run. An explicit
// --resume-from always wins so a user can restart at a chosen step.
func newMirror(a *app, def *flow.Definition, opts onboardOptions) (wizard.PositionMirror, error) {
	if opts.resumeFrom != "" {
		if !slices.Contains(def.IDs(), opts.resumeFrom) {
			return nil, errors.NewWizardError(
				fmt.Sprintf("flow %s has no step %q", def.Name, opts.resumeFrom),
				errors.ErrUnknownStep,
			).WithStep(opts.resumeFrom)
		}
		return mirror.NewMemory(opts.resumeFrom), nil
	}

	switch a.cfg.Wizard.Mirror {
	case config.MirrorFile:
		f := mirror.NewFile(a.positions, def.Name)
		if opts.reset {
			if err := f.Clear(); err != nil {
				return nil, err
			}
		}
		return f, nil
	case config.MirrorQuery:
		link := opts.resumeURL
		if link == "" || opts.reset {
			link = a.cfg.Wizard.ResumeURL
		}
		q, err := mirror.NewQuery(link, a.cfg.Wizard.MirrorKey)
		if errors.Is(err, errors.ErrInvalidInput) {
			return nil, fmt.Errorf("%s %q: check --resume-url or wizard.resume_url", errors.UserMessage(err), link)
		}
		return q, err
	case config.MirrorMemory:
		return mirror.NewMemory(""), nil
	default:
		return mirror.Nop{}, nil
	}
}

func reportProgress(out io.Writer, run *onboarding.Run, m wizard.PositionMirror) {
	step := run.Controller.CurrentStepID()
	switch m := m.(type) {
	case *mirror.File:
		fmt.Fprintf(out, "\nProgress saved at %q. Run 'teamboard onboard' to continue.\n", step)
	case *mirror.Query:
		fmt.Fprintf(out, "\nResume link: %s\n", m.URL())
	default:
		fmt.Fprintf(out, "\nStopped at %q. Run 'teamboard onboard --resume-from %s' to continue.\n", step, step)
	}
}

// isTerminal reports whether f is an *os.File attached to a terminal.
func isTerminal(f any) bool {
	file, ok := f.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// terminalWidth returns the column count of the terminal behind w, or 0
// when w is not a terminal.
func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0
	}
	return width
}
