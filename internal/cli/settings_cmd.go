package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/mresler/dayboard/internal/domain"
	"github.com/mresler/dayboard/internal/repository"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View or edit the controller's scheduling settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			current, err := repository.LoadOrDefault(ctx, app.Settings)
			if err != nil {
				return err
			}

			if show || app.IsInteractive == nil || !app.IsInteractive() {
				fmt.Fprint(app.Out, formatSettings(current))
				return nil
			}

			edited, confirmed, err := runSettingsForm(current)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(app.Out, "Settings unchanged.")
				return nil
			}
			if err := edited.Validate(); err != nil {
				return err
			}

			edited.UpdatedAt = time.Now().UTC()
			if err := app.Settings.Upsert(ctx, &edited); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Settings saved.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the current settings without editing")

	return cmd
}

// runSettingsForm collects edited settings through a huh form. The bool result
// reports whether the admin confirmed the save.
func runSettingsForm(current domain.ControllerSettings) (domain.ControllerSettings, bool, error) {
	submitTime := current.SubmitTime
	location := current.Location
	capOne := strconv.Itoa(current.DurationCapOne)
	capTwo := strconv.Itoa(current.DurationCapTwo)
	capThree := strconv.Itoa(current.DurationCapThree)
	gap := strconv.Itoa(current.GapMin)
	step := strconv.Itoa(current.StepMin)
	confirmed := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Submit time (HH:MM)").
				Placeholder("09:00").
				Value(&submitTime).
				Validate(validateClock),
			huh.NewInput().
				Title("Default location").
				Placeholder("north beach").
				Value(&location),
			huh.NewInput().
				Title("Duration, 1 student (min)").
				Value(&capOne).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Duration, 2 students (min)").
				Value(&capTwo).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Duration, 3+ students (min)").
				Value(&capThree).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Gap between events (min)").
				Value(&gap).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Slot step (min)").
				Value(&step).
				Validate(validatePositiveInt),
			huh.NewConfirm().
				Title("Save these settings?").
				Value(&confirmed),
		),
	).WithTheme(dayboardHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return current, false, err
	}
	if !confirmed {
		return current, false, nil
	}

	edited := current
	edited.SubmitTime = submitTime
	edited.Location = location
	edited.DurationCapOne = mustAtoi(capOne, current.DurationCapOne)
	edited.DurationCapTwo = mustAtoi(capTwo, current.DurationCapTwo)
	edited.DurationCapThree = mustAtoi(capThree, current.DurationCapThree)
	edited.GapMin = mustAtoi(gap, current.GapMin)
	edited.StepMin = mustAtoi(step, current.StepMin)
	return edited, true, nil
}

// validateClock accepts a HH:MM clock time.
func validateClock(s string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("use HH:MM format")
	}
	return nil
}

// validatePositiveInt accepts a positive integer.
func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// validateNonNegativeInt accepts zero or a positive integer.
func validateNonNegativeInt(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fmt.Errorf("enter zero or a positive number")
	}
	return nil
}

func mustAtoi(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
