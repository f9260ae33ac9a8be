package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var dayFlag string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the day's board without opening the live view",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			day, err := resolveDay(ctx, dayFlag, app.Days)
			if err != nil {
				return err
			}

			session, err := app.OpenBoard(ctx, day)
			if err != nil {
				return err
			}
			defer session.Close()

			fmt.Fprint(app.Out, formatDayBoard(session.Coordinator))
			return nil
		},
	}

	cmd.Flags().StringVar(&dayFlag, "day", "", "Operating day (YYYY-MM-DD), defaults to the last opened day")

	return cmd
}
