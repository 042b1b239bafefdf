package cmd

import (
	"github.com/spf13/cobra"

	"github.com/JakeFAU/arin-waitlist-watcher/internal/monitor"
)

// newCheckCmd creates the 'check' subcommand: one cycle, then exit with the
// outcome code.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Runs one waiting list check and exits",
		Long: `Performs a single fetch-parse-match-notify cycle and exits with a status
reflecting the outcome: 0 when the target entry was found and reported,
2 when it was absent from the table, 3 on a fetch or parse error.`,
		RunE: runCheckCommand,
	}
}

func runCheckCommand(cmd *cobra.Command, _ []string) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	outcome := rt.runner.RunOnce(cmd.Context())
	switch outcome.Kind {
	case monitor.OutcomeNotFound:
		return &outcomeError{code: outcome.ExitCode(), msg: "target entry not found in the current table"}
	case monitor.OutcomeError:
		return &outcomeError{code: outcome.ExitCode(), msg: outcome.Err.Error()}
	default:
		return nil
	}
}
