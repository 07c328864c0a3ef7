package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/horizon/internal/domain"
	horizonerrors "github.com/mrz1836/horizon/internal/errors"
)

// newSettingsCmd creates the settings command group.
func newSettingsCmd(flags *GlobalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change application settings",
	}

	cmd.AddCommand(newSettingsShowCmd(flags))
	cmd.AddCommand(newSettingsSetCmd(flags))

	return cmd
}

func newSettingsShowCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd, flags)
			if err != nil {
				return err
			}

			settings, err := app.store.GetSettings(cmd.Context())
			if err != nil {
				app.out.Error(err)
				return err
			}

			if flags.Output == OutputJSON {
				return app.out.JSON(settings)
			}

			app.out.Info("theme:             " + string(settings.Theme))
			app.out.Info("default_view:      " + string(settings.DefaultView))
			app.out.Info("first_day_of_week: " + weekdayName(settings.FirstDayOfWeek))
			app.out.Info("date_format:       " + settings.DateFormat)
			app.out.Info("show_week_numbers: " + strconv.FormatBool(settings.ShowWeekNumbers))
			return nil
		},
	}
}

func newSettingsSetCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: `Change one setting. Keys:
  theme              light | dark | auto
  default_view       timeline | list
  first_day_of_week  sunday | monday
  date_format        Go time layout, e.g. "Jan 2, 2006"
  show_week_numbers  true | false`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, flags)
			if err != nil {
				return err
			}

			settings, err := app.store.GetSettings(cmd.Context())
			if err != nil {
				app.out.Error(err)
				return err
			}

			if err := applySetting(&settings, args[0], args[1]); err != nil {
				app.out.Error(err)
				return err
			}

			if err := app.store.SaveSettings(cmd.Context(), settings); err != nil {
				app.out.Error(err)
				return err
			}

			app.out.Success(fmt.Sprintf("%s set to %s", args[0], args[1]))
			return nil
		},
	}
}

// applySetting mutates one settings field, validating the value.
func applySetting(settings *domain.AppSettings, key, value string) error {
	switch key {
	case "theme":
		theme := domain.Theme(value)
		if !theme.IsValid() {
			return fmt.Errorf("%w: theme %q", horizonerrors.ErrInvalidArgument, value)
		}
		settings.Theme = theme
	case "default_view":
		view := domain.View(value)
		if !view.IsValid() {
			return fmt.Errorf("%w: view %q", horizonerrors.ErrInvalidArgument, value)
		}
		settings.DefaultView = view
	case "first_day_of_week":
		switch value {
		case "sunday", "0":
			settings.FirstDayOfWeek = 0
		case "monday", "1":
			settings.FirstDayOfWeek = 1
		default:
			return fmt.Errorf("%w: first_day_of_week %q", horizonerrors.ErrInvalidArgument, value)
		}
	case "date_format":
		if value == "" {
			return fmt.Errorf("%w: date_format", horizonerrors.ErrEmptyValue)
		}
		settings.DateFormat = value
	case "show_week_numbers":
		show, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: show_week_numbers %q", horizonerrors.ErrInvalidArgument, value)
		}
		settings.ShowWeekNumbers = show
	default:
		return fmt.Errorf("%w: unknown setting %q", horizonerrors.ErrInvalidArgument, key)
	}

	return settings.Validate()
}

func weekdayName(day int) string {
	if day == 0 {
		return "sunday"
	}
	return "monday"
}
