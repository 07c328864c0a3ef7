package cli

import (
	"github.com/spf13/cobra"
)

// newViewCmd creates the view command.
func newViewCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "view <roadmap-id>",
		Short: "Show a roadmap's timeline",
		Long: `Render the roadmap as a month-by-month timeline: one block per
calendar month in the roadmap's year range, pinned objectives first,
with past, current, and future months styled differently.

Unlike 'roadmap open', viewing does not bump the last-accessed time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, flags)
			if err != nil {
				return err
			}

			rm, err := app.store.GetRoadmap(cmd.Context(), args[0])
			if err != nil {
				app.out.Error(err)
				return err
			}

			return renderRoadmap(cmd, app, flags, rm)
		},
	}
}
