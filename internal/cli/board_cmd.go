package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	var dayFlag string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive day board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			day, err := resolveDay(ctx, dayFlag, app.Days)
			if err != nil {
				return err
			}
			touchDay(ctx, app.Days, day)

			session, err := app.OpenBoard(ctx, day)
			if err != nil {
				return err
			}
			defer session.Close()

			if app.IsInteractive == nil || !app.IsInteractive() {
				fmt.Fprint(app.Out, formatDayBoard(session.Coordinator))
				return nil
			}

			model := newBoardModel(ctx, session)
			program := tea.NewProgram(model, tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&dayFlag, "day", "", "Operating day (YYYY-MM-DD), defaults to the last opened day")

	return cmd
}
