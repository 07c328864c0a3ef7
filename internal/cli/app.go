package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrz1836/horizon/internal/clock"
	"github.com/mrz1836/horizon/internal/config"
	"github.com/mrz1836/horizon/internal/constants"
	"github.com/mrz1836/horizon/internal/planner"
	"github.com/mrz1836/horizon/internal/session"
	"github.com/mrz1836/horizon/internal/store"
	"github.com/mrz1836/horizon/internal/tui"
)

// app bundles the collaborators every command needs: effective config,
// the file store, the session-backed planner service, and styled output.
type app struct {
	cfg   *config.Config
	store *store.FileStore
	svc   *planner.Service
	out   tui.Output
	clk   clock.Clock
}

// newApp wires up an app for one command invocation.
func newApp(cmd *cobra.Command, flags *GlobalFlags) (*app, error) {
	cfg, err := config.LoadWithOverrides(cmd.Context(), &config.Config{Home: flags.Home})
	if err != nil {
		return nil, err
	}

	logger := GetLogger()
	clk := clock.RealClock{}

	fileStore, err := store.NewFileStore(cfg.Home, clk, logger)
	if err != nil {
		return nil, err
	}

	svc := planner.New(session.New(clk), fileStore, clk, logger)

	tui.CheckNoColor()

	return &app{
		cfg:   cfg,
		store: fileStore,
		svc:   svc,
		out:   tui.NewOutput(cmd.OutOrStdout(), flags.Output),
		clk:   clk,
	}, nil
}

// saveOpenRoadmap persists the session's roadmap. With autosave enabled the
// write goes through the debounced autosaver (Close performs the final
// flush); otherwise it flushes directly.
func (a *app) saveOpenRoadmap(ctx context.Context) error {
	if a.cfg.Autosave.Enabled {
		saver := planner.NewAutosaver(a.svc, a.cfg.Autosave.Delay)
		saver.Notify()
		return saver.Close()
	}
	return a.svc.Flush(ctx)
}

// resolveHome returns the effective Horizon home directory for early
// initialization (before the config is loaded): flag, then HORIZON_HOME,
// then ~/.horizon. Empty when no home directory can be determined.
func resolveHome(flagHome string) string {
	if flagHome != "" {
		return flagHome
	}
	if envHome := os.Getenv("HORIZON_HOME"); envHome != "" {
		return envHome
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, constants.HorizonHome)
}
