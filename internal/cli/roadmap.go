package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mrz1836/horizon/internal/constants"
	"github.com/mrz1836/horizon/internal/domain"
	horizonerrors "github.com/mrz1836/horizon/internal/errors"
	"github.com/mrz1836/horizon/internal/planner"
	"github.com/mrz1836/horizon/internal/tui"
)

// newRoadmapCmd creates the roadmap command group.
func newRoadmapCmd(flags *GlobalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roadmap",
		Short: "Manage roadmaps",
		Long:  `Create, list, open, and delete roadmaps.`,
	}

	cmd.AddCommand(newRoadmapCreateCmd(flags))
	cmd.AddCommand(newRoadmapListCmd(flags))
	cmd.AddCommand(newRoadmapOpenCmd(flags))
	cmd.AddCommand(newRoadmapDeleteCmd(flags))

	return cmd
}

// roadmapCreateFlags holds the flags for the create command.
type roadmapCreateFlags struct {
	description string
	startYear   int
	endYear     int
	colorTheme  string
	icon        string
	category    string
}

func newRoadmapCreateCmd(flags *GlobalFlags) *cobra.Command {
	createFlags := &roadmapCreateFlags{}

	cmd := &cobra.Command{
		Use:   "create [title]",
		Short: "Create a new roadmap",
		Long: `Create a new roadmap spanning a range of years.

When called without a title argument, launches an interactive form.
When called with a title and year flags, creates the roadmap directly.

Examples:
  # Interactive mode
  horizon roadmap create

  # Direct mode
  horizon roadmap create "2026 Fitness" --start-year 2026 --end-year 2027`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, flags)
			if err != nil {
				return err
			}

			input := planner.RoadmapInput{
				Description: createFlags.description,
				StartYear:   createFlags.startYear,
				EndYear:     createFlags.endYear,
				ColorTheme:  createFlags.colorTheme,
				Icon:        createFlags.icon,
				Category:    createFlags.category,
			}
			if len(args) > 0 {
				input.Title = args[0]
			} else if err := promptRoadmapInput(&input); err != nil {
				return err
			}

			rm, err := app.svc.CreateRoadmap(cmd.Context(), input)
			if err != nil {
				app.out.Error(err)
				return err
			}

			if flags.Output == OutputJSON {
				return app.out.JSON(rm)
			}
			app.out.Success(fmt.Sprintf("created roadmap %q (%d-%d)", rm.Title, rm.StartYear, rm.EndYear))
			app.out.Info("id: " + rm.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&createFlags.description, "description", "d", "", "roadmap description")
	cmd.Flags().IntVar(&createFlags.startYear, "start-year", 0, "first year of the roadmap")
	cmd.Flags().IntVar(&createFlags.endYear, "end-year", 0, "last year of the roadmap")
	cmd.Flags().StringVar(&createFlags.colorTheme, "color-theme", "", "color theme name")
	cmd.Flags().StringVar(&createFlags.icon, "icon", "", "display icon")
	cmd.Flags().StringVar(&createFlags.category, "category", "", "roadmap category")

	return cmd
}

// promptRoadmapInput collects roadmap fields through an interactive form.
func promptRoadmapInput(input *planner.RoadmapInput) error {
	startYear := ""
	endYear := ""
	if input.StartYear != 0 {
		startYear = strconv.Itoa(input.StartYear)
	}
	if input.EndYear != 0 {
		endYear = strconv.Itoa(input.EndYear)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description("What is this roadmap about? (required)").
				Value(&input.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("%w: title", horizonerrors.ErrEmptyValue)
					}
					if len(s) > constants.MaxTitleLength {
						return fmt.Errorf("%w: title exceeds %d characters", horizonerrors.ErrValueOutOfRange, constants.MaxTitleLength)
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Description (optional)").
				Value(&input.Description).
				CharLimit(constants.MaxDescriptionLength),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start year").
				Description(fmt.Sprintf("First year on the timeline (%d-%d)", constants.MinYear, constants.MaxYear)).
				Value(&startYear).
				Validate(validateYear),
			huh.NewInput().
				Title("End year").
				Description("Last year on the timeline").
				Value(&endYear).
				Validate(validateYear),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("form cancelled: %w", err)
	}

	input.StartYear, _ = strconv.Atoi(startYear)
	input.EndYear, _ = strconv.Atoi(endYear)
	return nil
}

func validateYear(s string) error {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%w: year", horizonerrors.ErrInvalidArgument)
	}
	if year < constants.MinYear || year > constants.MaxYear {
		return fmt.Errorf("%w: year must be between %d and %d", horizonerrors.ErrValueOutOfRange, constants.MinYear, constants.MaxYear)
	}
	return nil
}

func newRoadmapListCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all roadmaps",
		Long:  `List all roadmaps, most recently opened first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd, flags)
			if err != nil {
				return err
			}

			roadmaps, err := app.store.GetAllRoadmaps(cmd.Context())
			if err != nil {
				app.out.Error(err)
				return err
			}

			if flags.Output == OutputJSON {
				return app.out.JSON(roadmaps)
			}

			if len(roadmaps) == 0 {
				app.out.Info("no roadmaps yet; run 'horizon roadmap create' to start one")
				return nil
			}

			table := tui.NewTable(cmd.OutOrStdout(), []tui.TableColumn{
				{Name: "ID", Width: 36},
				{Name: "TITLE", Width: 28},
				{Name: "YEARS", Width: 9},
				{Name: "MONTHS", Width: 6, Align: tui.AlignRight},
			})
			table.WriteHeader()
			for _, rm := range roadmaps {
				table.WriteRow(
					rm.ID,
					rm.Title,
					fmt.Sprintf("%d-%d", rm.StartYear, rm.EndYear),
					strconv.Itoa(len(rm.Months)),
				)
			}
			return nil
		},
	}
}

func newRoadmapOpenCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "open <roadmap-id>",
		Short: "Open a roadmap and show its timeline",
		Long:  `Open a roadmap: bumps its last-accessed time and prints the timeline.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, flags)
			if err != nil {
				return err
			}

			rm, err := app.svc.OpenRoadmap(cmd.Context(), args[0])
			if err != nil {
				app.out.Error(err)
				return err
			}

			return renderRoadmap(cmd, app, flags, rm)
		},
	}
}

func newRoadmapDeleteCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <roadmap-id>",
		Short: "Delete a roadmap",
		Long:  `Delete a roadmap and all its months and objectives. Irreversible.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, flags)
			if err != nil {
				return err
			}

			if err := app.store.DeleteRoadmap(cmd.Context(), args[0]); err != nil {
				app.out.Error(err)
				return err
			}

			app.out.Success("roadmap deleted")
			return nil
		},
	}
}

// renderRoadmap prints a roadmap as JSON or as the styled timeline.
func renderRoadmap(cmd *cobra.Command, app *app, flags *GlobalFlags, rm *domain.Roadmap) error {
	if flags.Output == OutputJSON {
		return app.out.JSON(rm)
	}

	settings, err := app.store.GetSettings(cmd.Context())
	if err != nil {
		settings = domain.DefaultSettings()
	}

	renderer := tui.NewTimelineRenderer(app.clk, settings)
	_, err = fmt.Fprint(cmd.OutOrStdout(), renderer.Render(rm))
	return err
}
