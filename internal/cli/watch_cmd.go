package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/mresler/dayboard/internal/board"
	"github.com/spf13/cobra"
)

// newWatchCmd follows the day's realtime feed without the interactive view.
// Every applied change is reported through the board observer, so this is the
// headless way to keep an eye on a busy day.
func newWatchCmd(app *App) *cobra.Command {
	var dayFlag string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the day's realtime changes until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

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

			fmt.Fprint(app.Out, formatDayBoard(session.Coordinator))
			fmt.Fprintf(app.Out, "\nWatching %s, ctrl-c to stop.\n", day.Format(dayLayout))

			return board.RunFeed(ctx, session.Feed, session.Coordinator)
		},
	}

	cmd.Flags().StringVar(&dayFlag, "day", "", "Operating day (YYYY-MM-DD)")

	return cmd
}
