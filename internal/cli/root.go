package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/horizon/internal/errors"
	"github.com/mrz1836/horizon/internal/logging"
	"github.com/mrz1836/horizon/internal/signal"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the initialized logger for use by subcommands.
// This is set during PersistentPreRunE and should be accessed via GetLogger.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// IMPORTANT: This function MUST only be called after the root command's
// PersistentPreRunE has executed. Calling it before initialization will
// return a zero-value logger that discards all log output.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd creates and returns the root command for the horizon CLI.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "horizon",
		Short: "Horizon - a local-first timeline planner",
		Long: `Horizon plans goals on a multi-year timeline: roadmaps spanning a range
of years, broken into calendar months, filled with date-ranged objectives.

All data lives on your machine under ~/.horizon. No accounts, no sync.

Common workflows:
  • horizon roadmap create "2026 Fitness" --start-year 2026 --end-year 2027
  • horizon objective add <roadmap-id> 2026-03 "Run a 10k"
  • horizon view <roadmap-id>
  • horizon export --out backup.json`,
		Version: formatVersion(info),
		// Run displays help when the root command is invoked without
		// subcommands, so PersistentPreRunE still validates flags.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			globalLoggerMu.Lock()
			globalLogger = logging.Init(logging.Options{
				Verbose:    flags.Verbose,
				Quiet:      flags.Quiet,
				Home:       resolveHome(flags.Home),
				MaxSizeMB:  10,
				MaxBackups: 3,
				MaxAgeDays: 30,
			})
			globalLoggerMu.Unlock()

			return nil
		},
		// SilenceUsage prevents printing usage on error
		// (we handle our own error messages)
		SilenceUsage: true,
	}

	AddGlobalFlags(cmd, flags)

	cmd.AddCommand(newRoadmapCmd(flags))
	cmd.AddCommand(newObjectiveCmd(flags))
	cmd.AddCommand(newViewCmd(flags))
	cmd.AddCommand(newExportCmd(flags))
	cmd.AddCommand(newImportCmd(flags))
	cmd.AddCommand(newResetDataCmd(flags))
	cmd.AddCommand(newSettingsCmd(flags))
	cmd.AddCommand(newConfigCmd(flags))

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build
// info. Ctrl+C cancels the command's context so pending saves can
// finish before the process exits.
func Execute(ctx context.Context, info BuildInfo) error {
	handler := signal.NewHandler(ctx)
	defer handler.Stop()

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, info)
	defer logging.Close()
	return cmd.ExecuteContext(handler.Context())
}
