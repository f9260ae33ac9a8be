package board

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// BoardEvent captures lightweight execution telemetry for one coordinator
// operation.
type BoardEvent struct {
	Op       string
	Duration time.Duration
	Success  bool
	Err      error
	Fields   map[string]any
}

// Observer receives coordinator operation events. Implementations surface
// them as log lines or transient UI notifications.
type Observer interface {
	ObserveBoard(ctx context.Context, event BoardEvent)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveBoard(context.Context, BoardEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes board operation events to the provided writer.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) ObserveBoard(ctx context.Context, event BoardEvent) {
	attrs := make([]any, 0, 6+len(event.Fields)*2)
	attrs = append(attrs,
		"op", event.Op,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "board_op", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "board_op", attrs...)
}

func observerOrNoop(obs Observer) Observer {
	if obs == nil {
		return NoopObserver{}
	}
	return obs
}
