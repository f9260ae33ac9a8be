package cli

import (
	"context"
	"fmt"

	"github.com/mresler/dayboard/internal/board"
	"github.com/mresler/dayboard/internal/domain"
	"github.com/spf13/cobra"
)

// newAdjustCmd performs a one-shot cascade edit: enter adjustment mode, move
// one event, commit. The interactive board view covers multi-event sessions.
func newAdjustCmd(app *App) *cobra.Command {
	var dayFlag, teacherID, eventID, startClock, location string
	var durationMin int

	cmd := &cobra.Command{
		Use:   "adjust",
		Short: "Move one event and commit the change",
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
			c := session.Coordinator

			if err := c.EnterAdjustmentMode([]string{teacherID}); err != nil {
				return err
			}

			delta := board.Delta{EventID: eventID}
			if startClock != "" {
				start, err := domain.AtClock(day, startClock)
				if err != nil {
					return err
				}
				delta.Start = &start
			}
			if durationMin > 0 {
				delta.DurationMin = &durationMin
			}
			if location != "" {
				delta.Location = &location
			}

			if err := c.ProposeAdjustment(delta); err != nil {
				c.CancelAdjustment()
				return err
			}

			failed, err := c.CommitAdjustment(ctx)
			if err != nil {
				c.CancelAdjustment()
				return fmt.Errorf("%w (events: %v)", err, failed)
			}
			fmt.Fprintf(app.Out, "Adjusted event %s\n", eventID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dayFlag, "day", "", "Operating day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&teacherID, "teacher", "", "Teacher whose queue the event is on")
	cmd.Flags().StringVar(&eventID, "event", "", "Event ID to move")
	cmd.Flags().StringVar(&startClock, "start", "", "New start time (HH:MM)")
	cmd.Flags().IntVar(&durationMin, "duration", 0, "New duration in minutes")
	cmd.Flags().StringVar(&location, "location", "", "New location")
	cmd.MarkFlagRequired("teacher")
	cmd.MarkFlagRequired("event")

	return cmd
}
