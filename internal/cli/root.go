package cli

import (
	"context"
	"io"
	"time"

	"github.com/mresler/dayboard/internal/board"
	"github.com/mresler/dayboard/internal/realtime"
	"github.com/mresler/dayboard/internal/repository"
	"github.com/spf13/cobra"
)

// BoardSession bundles the live pieces a command needs for one operating day.
type BoardSession struct {
	Coordinator *board.Coordinator
	Feed        realtime.Feed
	Source      board.DataSource
	Close       func()
}

// App holds the collaborators CLI commands run against.
type App struct {
	Settings repository.SettingsRepo
	Days     repository.DayLogRepo

	// OpenBoard builds a refreshed coordinator and a live feed for the day.
	OpenBoard func(ctx context.Context, day time.Time) (*BoardSession, error)

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	Out io.Writer
}

// NewRootCmd creates the top-level "dayboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "dayboard",
		Short: "Live scheduling board for the day's lessons",
	}

	root.AddCommand(
		newBoardCmd(app),
		newStatusCmd(app),
		newEventCmd(app),
		newAdjustCmd(app),
		newSettingsCmd(app),
		newWatchCmd(app),
	)

	return root
}
