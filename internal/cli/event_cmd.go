package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mresler/dayboard/internal/board"
	"github.com/spf13/cobra"
)

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage scheduled events",
	}
	cmd.AddCommand(newEventCreateCmd(app))
	return cmd
}

func newEventCreateCmd(app *App) *cobra.Command {
	var dayFlag, bookingID, lessonID string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Schedule a lesson's next event on its teacher's queue",
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

			bookings, err := session.Source.DayBookings(ctx, day)
			if err != nil {
				return fmt.Errorf("fetching day bookings: %w", err)
			}
			for _, b := range bookings {
				if b.ID != bookingID {
					continue
				}
				opt, err := session.Coordinator.CreateEvent(ctx, b, lessonID)
				if err != nil {
					if errors.Is(err, board.ErrTeacherNotOnBoard) {
						return fmt.Errorf("lesson %s: teacher is not on today's board", lessonID)
					}
					return err
				}
				fmt.Fprintf(app.Out, "Scheduled %s-%s for %s (pending confirmation)\n",
					opt.Node.Start().Format("15:04"),
					opt.Node.End().Format("15:04"),
					opt.Node.BookingLeaderName,
				)
				return nil
			}
			return fmt.Errorf("booking %s not found on %s", bookingID, day.Format(dayLayout))
		},
	}

	cmd.Flags().StringVar(&dayFlag, "day", "", "Operating day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&bookingID, "booking", "", "Booking ID")
	cmd.Flags().StringVar(&lessonID, "lesson", "", "Lesson ID within the booking")
	cmd.MarkFlagRequired("booking")
	cmd.MarkFlagRequired("lesson")

	return cmd
}
