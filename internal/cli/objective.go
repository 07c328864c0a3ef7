package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mrz1836/horizon/internal/constants"
	"github.com/mrz1836/horizon/internal/dates"
	"github.com/mrz1836/horizon/internal/domain"
	horizonerrors "github.com/mrz1836/horizon/internal/errors"
	"github.com/mrz1836/horizon/internal/planner"
)

// newObjectiveCmd creates the objective command group.
func newObjectiveCmd(flags *GlobalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "objective",
		Short: "Manage objectives within a roadmap",
		Long:  `Add, update, move, and delete objectives in a roadmap's months.`,
	}

	cmd.AddCommand(newObjectiveAddCmd(flags))
	cmd.AddCommand(newObjectiveCompleteCmd(flags))
	cmd.AddCommand(newObjectiveProgressCmd(flags))
	cmd.AddCommand(newObjectiveStatusCmd(flags))
	cmd.AddCommand(newObjectiveMoveCmd(flags))
	cmd.AddCommand(newObjectiveDeleteCmd(flags))

	return cmd
}

// objectiveAddFlags holds the flags for the add command.
type objectiveAddFlags struct {
	description string
	startDate   string
	endDate     string
	energy      string
	priority    string
	tags        string
	category    string
	notes       string
}

func newObjectiveAddCmd(flags *GlobalFlags) *cobra.Command {
	addFlags := &objectiveAddFlags{}

	cmd := &cobra.Command{
		Use:   "add <roadmap-id> <month-key> [title]",
		Short: "Add an objective to a month",
		Long: `Add an objective to a roadmap month (month keys look like 2026-03).

When called without a title argument, launches an interactive form.

Examples:
  # Interactive mode
  horizon objective add 8f14e45f 2026-03

  # Direct mode
  horizon objective add 8f14e45f 2026-03 "Run a 10k" \
    --start 2026-03-01 --end 2026-03-31 --priority high`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, flags)
			if err != nil {
				return err
			}

			if _, err := app.svc.OpenRoadmap(cmd.Context(), args[0]); err != nil {
				app.out.Error(err)
				return err
			}
			monthKey := args[1]

			input := planner.ObjectiveInput{
				Description: addFlags.description,
				StartDate:   addFlags.startDate,
				EndDate:     addFlags.endDate,
				EnergyLevel: domain.EnergyLevel(addFlags.energy),
				Priority:    domain.Priority(addFlags.priority),
				Category:    addFlags.category,
				Notes:       addFlags.notes,
			}
			if addFlags.tags != "" {
				input.Tags = splitTags(addFlags.tags)
			}
			if len(args) > 2 {
				input.Title = args[2]
			} else if err := promptObjectiveInput(monthKey, &input); err != nil {
				return err
			}

			obj, err := app.svc.CreateObjective(monthKey, input)
			if err != nil {
				app.out.Error(err)
				return err
			}

			if err := app.saveOpenRoadmap(cmd.Context()); err != nil {
				app.out.Error(err)
				return err
			}

			if flags.Output == OutputJSON {
				return app.out.JSON(obj)
			}
			app.out.Success(fmt.Sprintf("added %q to %s (%d days)", obj.Title, monthKey, obj.Duration))
			if obj.IsPinned {
				app.out.Info("pinned: spans the whole month")
			}
			app.out.Info("id: " + obj.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&addFlags.description, "description", "d", "", "objective description")
	cmd.Flags().StringVar(&addFlags.startDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&addFlags.endDate, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&addFlags.energy, "energy", "", "energy level (low, medium, high, critical)")
	cmd.Flags().StringVarP(&addFlags.priority, "priority", "p", "", "priority (low, medium, high, urgent)")
	cmd.Flags().StringVarP(&addFlags.tags, "tags", "t", "", "comma-separated tags")
	cmd.Flags().StringVar(&addFlags.category, "category", "", "objective category")
	cmd.Flags().StringVar(&addFlags.notes, "notes", "", "free-form notes")

	return cmd
}

// promptObjectiveInput collects objective fields through an interactive form.
func promptObjectiveInput(monthKey string, input *planner.ObjectiveInput) error {
	energy := string(input.EnergyLevel)
	if energy == "" {
		energy = string(domain.EnergyMedium)
	}
	priority := string(input.Priority)
	if priority == "" {
		priority = string(domain.PriorityMedium)
	}

	energyOptions := make([]huh.Option[string], 0, len(domain.ValidEnergyLevels()))
	for _, e := range domain.ValidEnergyLevels() {
		energyOptions = append(energyOptions, huh.NewOption(string(e), string(e)))
	}
	priorityOptions := make([]huh.Option[string], 0, len(domain.ValidPriorities()))
	for _, p := range domain.ValidPriorities() {
		priorityOptions = append(priorityOptions, huh.NewOption(string(p), string(p)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description("What do you want to accomplish? (required)").
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
			huh.NewInput().
				Title("Start date").
				Description("First day, e.g. "+monthKey+"-01").
				Value(&input.StartDate).
				Validate(validateISODate),
			huh.NewInput().
				Title("End date").
				Description("Last day (inclusive)").
				Value(&input.EndDate).
				Validate(validateISODate),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Energy level").
				Description("How demanding is this?").
				Options(energyOptions...).
				Value(&energy),
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorityOptions...).
				Value(&priority),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("form cancelled: %w", err)
	}

	input.EnergyLevel = domain.EnergyLevel(energy)
	input.Priority = domain.Priority(priority)
	return nil
}

func validateISODate(s string) error {
	if !dates.IsValidISODate(strings.TrimSpace(s)) {
		return fmt.Errorf("%w: use YYYY-MM-DD", horizonerrors.ErrInvalidDate)
	}
	return nil
}

func newObjectiveCompleteCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <roadmap-id> <month-key> <objective-id>",
		Short: "Mark an objective as completed",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObjectiveOp(cmd, flags, args[0], "objective completed", func(app *app) error {
				return app.svc.CompleteObjective(args[1], args[2])
			})
		},
	}
}

func newObjectiveProgressCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <roadmap-id> <month-key> <objective-id> <percent>",
		Short: "Set an objective's progress (0-100)",
		Long: `Set an objective's progress percentage. Values outside 0-100 are
clamped; reaching 100 marks the objective completed.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			progress, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("%w: progress must be a number", horizonerrors.ErrInvalidArgument)
			}
			return runObjectiveOp(cmd, flags, args[0], "progress updated", func(app *app) error {
				return app.svc.UpdateProgress(args[1], args[2], progress)
			})
		},
	}
}

func newObjectiveStatusCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status <roadmap-id> <month-key> <objective-id> <status>",
		Short: "Set an objective's status",
		Long: `Set an objective's status to one of: pending, in-progress, completed,
cancelled, blocked. Setting completed also snaps progress to 100.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObjectiveOp(cmd, flags, args[0], "status updated", func(app *app) error {
				return app.svc.UpdateStatus(args[1], args[2], domain.ObjectiveStatus(args[3]))
			})
		},
	}
}

func newObjectiveMoveCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "move <roadmap-id> <objective-id> <from-month> <to-month>",
		Short: "Move an objective to another month",
		Long: `Move an objective between months. The move is atomic: the objective
is never lost or duplicated, and its pin is recomputed for the target
month.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObjectiveOp(cmd, flags, args[0], "objective moved", func(app *app) error {
				return app.svc.MoveObjective(args[1], args[2], args[3])
			})
		},
	}
}

func newObjectiveDeleteCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <roadmap-id> <month-key> <objective-id>",
		Short: "Delete an objective",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObjectiveOp(cmd, flags, args[0], "objective deleted", func(app *app) error {
				return app.svc.DeleteObjective(args[1], args[2])
			})
		},
	}
}

// runObjectiveOp opens the roadmap, applies op against the session, and
// persists the result.
func runObjectiveOp(cmd *cobra.Command, flags *GlobalFlags, roadmapID, successMsg string, op func(app *app) error) error {
	app, err := newApp(cmd, flags)
	if err != nil {
		return err
	}

	if _, err := app.svc.OpenRoadmap(cmd.Context(), roadmapID); err != nil {
		app.out.Error(err)
		return err
	}

	if err := op(app); err != nil {
		app.out.Error(err)
		return err
	}

	if err := app.saveOpenRoadmap(cmd.Context()); err != nil {
		app.out.Error(err)
		return err
	}

	if flags.Output == OutputJSON {
		return app.out.JSON(app.svc.Session().CurrentRoadmap())
	}
	app.out.Success(successMsg)
	return nil
}

// splitTags turns a comma-separated flag value into trimmed tags.
func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
