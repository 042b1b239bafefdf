package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newWatchCmd creates the 'watch' subcommand: repeat the check at a fixed
// interval until interrupted.
func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Runs the waiting list check continuously",
		Long: `Runs a check cycle, sleeps for the configured interval, and repeats until
the process is interrupted. The interval is constant regardless of outcome.`,
		RunE: runWatchCommand,
	}
}

func runWatchCommand(cmd *cobra.Command, _ []string) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt.logger.Info("Watch mode enabled",
		zap.Duration("interval", rt.cfg.Interval()),
		zap.String("target", rt.cfg.TargetDate),
		zap.String("state_file", rt.cfg.StateFile),
	)

	rt.runner.Watch(ctx, rt.cfg.Interval())
	rt.logger.Info("Watch mode stopped")
	return nil
}
