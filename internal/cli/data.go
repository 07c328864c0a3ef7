package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	horizonerrors "github.com/mrz1836/horizon/internal/errors"
)

// newExportCmd creates the export command.
func newExportCmd(flags *GlobalFlags) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data as a JSON snapshot",
		Long: `Export every roadmap and the settings as a single versioned JSON
snapshot, suitable for backup or for 'horizon import'.

Writes to stdout unless -o is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd, flags)
			if err != nil {
				return err
			}

			data, err := app.store.ExportData(cmd.Context())
			if err != nil {
				app.out.Error(err)
				return err
			}

			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if err := os.WriteFile(outFile, data, 0o600); err != nil {
				app.out.Error(err)
				return fmt.Errorf("failed to write export file: %w", err)
			}
			app.out.Success("exported to " + outFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&outFile, "out", "", "write the snapshot to a file instead of stdout")
	return cmd
}

// newImportCmd creates the import command.
func newImportCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON snapshot, replacing all data",
		Long: `Import a snapshot produced by 'horizon export'. All existing
roadmaps and settings are replaced by the snapshot's contents.

A snapshot with an unsupported version is rejected before anything
is touched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, flags)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				app.out.Error(err)
				return fmt.Errorf("failed to read snapshot: %w", err)
			}

			if err := app.store.ImportData(cmd.Context(), data); err != nil {
				app.out.Error(err)
				return err
			}

			app.out.Success("import complete")
			return nil
		},
	}
}

// newResetDataCmd creates the reset-data command.
func newResetDataCmd(flags *GlobalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset-data",
		Short: "Delete all roadmaps and settings",
		Long: `Delete every roadmap and the stored settings. Irreversible;
requires --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				return fmt.Errorf("%w: pass --force to wipe all data", horizonerrors.ErrInvalidArgument)
			}

			app, err := newApp(cmd, flags)
			if err != nil {
				return err
			}

			if err := app.store.ClearAllData(cmd.Context()); err != nil {
				app.out.Error(err)
				return err
			}

			app.out.Success("all data cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm wiping all data")
	return cmd
}
