package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/mresler/dayboard/internal/backend"
	"github.com/mresler/dayboard/internal/board"
	"github.com/mresler/dayboard/internal/cli"
	"github.com/mresler/dayboard/internal/config"
	"github.com/mresler/dayboard/internal/db"
	"github.com/mresler/dayboard/internal/realtime"
	"github.com/mresler/dayboard/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	settingsRepo := repository.NewSQLiteSettingsRepo(database)
	dayLogRepo := repository.NewSQLiteDayLogRepo(database)

	var callObserver backend.Observer = backend.NoopObserver{}
	var boardObserver board.Observer = board.NoopObserver{}
	if cfg.LogCalls {
		callObserver = backend.NewLogObserver(os.Stderr)
		boardObserver = board.NewLogObserver(os.Stderr)
	}
	client := backend.NewClient(backend.Config{
		BaseURL:   cfg.BackendURL,
		APIToken:  cfg.APIToken,
		TimeoutMs: cfg.TimeoutMs,
	}, callObserver)

	app := &cli.App{
		Settings: settingsRepo,
		Days:     dayLogRepo,
		Out:      os.Stdout,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	app.OpenBoard = func(ctx context.Context, day time.Time) (*cli.BoardSession, error) {
		settings, err := repository.LoadOrDefault(ctx, settingsRepo)
		if err != nil {
			return nil, err
		}
		coordinator := board.NewCoordinator(day, settings, client, client, boardObserver)
		if err := coordinator.Refresh(ctx); err != nil {
			return nil, err
		}

		// A dead feed should not block offline work like status or
		// one-shot adjustments; the board just stops receiving live pushes.
		var feed realtime.Feed
		feed, err = realtime.DialFeed(ctx, cfg.FeedURL, day)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: realtime feed unavailable: %v\n", err)
			feed = realtime.NewMemoryFeed()
		}

		return &cli.BoardSession{
			Coordinator: coordinator,
			Feed:        feed,
			Source:      client,
			Close:       func() { feed.Close() },
		}, nil
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
