package board

import (
	"context"

	"github.com/mresler/dayboard/internal/realtime"
)

// RunFeed drains the realtime feed into the coordinator until the feed closes
// or the context ends. Each change is fully applied before the next one is
// read, so rebuilds never interleave.
//
// The returned error is the feed's terminal error, nil on clean shutdown or
// context cancellation.
func RunFeed(ctx context.Context, feed realtime.Feed, c *Coordinator) error {
	for {
		select {
		case <-ctx.Done():
			feed.Close()
			return nil
		case change, ok := <-feed.Changes():
			if !ok {
				return feed.Err()
			}
			// Adjustment conflicts, malformed changes, and transient
			// refresh failures are all surfaced through the
			// coordinator's observer; the pump keeps draining.
			_ = c.OnRealtimeEvent(ctx, change)
		}
	}
}
