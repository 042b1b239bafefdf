// Package cmd defines and implements the CLI commands for the arinwatch
// executable.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/arin-waitlist-watcher/internal/config"
	"github.com/JakeFAU/arin-waitlist-watcher/internal/fetcher"
	"github.com/JakeFAU/arin-waitlist-watcher/internal/logging"
	"github.com/JakeFAU/arin-waitlist-watcher/internal/monitor"
	"github.com/JakeFAU/arin-waitlist-watcher/internal/notify"
	"github.com/JakeFAU/arin-waitlist-watcher/internal/state"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arinwatch",
		Short: "Monitors your position on the ARIN IPv4 waiting list.",
		Long: `arinwatch scrapes the script-rendered ARIN IPv4 waiting list page with
headless Chrome, finds your entry by its exact enrollment timestamp, and
reports your current position by email on every check (printing to the
console when mail is not configured or fails).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (optional)")
	cmd.PersistentFlags().String("target", "", "target timestamp exactly as shown on the waiting list page")
	cmd.PersistentFlags().Int("interval", 0, "watch interval in seconds")
	cmd.PersistentFlags().String("state-file", "", "path to the state file")

	cmd.AddCommand(newCheckCmd(), newWatchCmd())
	return cmd
}

// Execute runs the CLI and returns the process exit code. Run-once checks
// map their cycle outcome onto the exit status: 0 found, 2 not found,
// 3 fetch/parse error.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		return exitCode(err)
	}
	return 0
}

func exitCode(err error) int {
	var oe *outcomeError
	if errors.As(err, &oe) {
		// Already reported through the notifier and logs.
		return oe.code
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}

// outcomeError carries a non-zero cycle exit code through cobra's RunE
// plumbing without triggering generic error handling.
type outcomeError struct {
	code int
	msg  string
}

func (e *outcomeError) Error() string { return e.msg }

// runtime bundles the wired components a command needs for its lifetime.
type runtime struct {
	cfg     config.Config
	logger  *zap.Logger
	runner  *monitor.Runner
	fetcher *fetcher.Fetcher
}

func (rt *runtime) close() {
	rt.fetcher.Close()
	_ = rt.logger.Sync()
}

// buildRuntime loads configuration (environment, optional .env file,
// optional config file, flag overrides) and wires every component once.
func buildRuntime(cmd *cobra.Command) (*runtime, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogDevelopment)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	pageFetcher, err := fetcher.New(fetcher.Config{
		URL:        cfg.WaitlistURL,
		NavTimeout: cfg.NavTimeout(),
		UserAgent:  cfg.UserAgent,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("init fetcher: %w", err)
	}

	store := state.NewStore(cfg.StateFile, logger)
	notifier := notify.New(cfg.Notify(), os.Stdout, logger)

	runner, err := monitor.NewRunner(monitor.Options{
		Fetcher:       pageFetcher,
		Store:         store,
		Notifier:      notifier,
		Target:        cfg.TargetDate,
		SubjectPrefix: cfg.MailSubjectPrefix,
		FormatTime:    monitor.NewCheckTimeFormatter(logger),
		Logger:        logger,
	})
	if err != nil {
		pageFetcher.Close()
		return nil, fmt.Errorf("init runner: %w", err)
	}

	return &runtime{cfg: cfg, logger: logger, runner: runner, fetcher: pageFetcher}, nil
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("target") {
		cfg.TargetDate, _ = flags.GetString("target")
	}
	if flags.Changed("interval") {
		cfg.CheckIntervalSeconds, _ = flags.GetInt("interval")
	}
	if flags.Changed("state-file") {
		cfg.StateFile, _ = flags.GetString("state-file")
	}
}
