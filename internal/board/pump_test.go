package board

import (
	"context"
	"testing"
	"time"

	"github.com/mresler/dayboard/internal/realtime"
	"github.com/mresler/dayboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFeed_AppliesChangesUntilClosed(t *testing.T) {
	c, source, _ := newTestBoard(t)
	feed := realtime.NewMemoryFeed()

	done := make(chan error, 1)
	go func() {
		done <- RunFeed(context.Background(), feed, c)
	}()

	feed.Push(realtime.Change{
		Type:      realtime.ChangeUpdated,
		Entity:    realtime.EntityEvent,
		TeacherID: "t-1",
		Start:     testutil.At("09:00"),
	})
	require.Eventually(t, func() bool {
		source.mu.Lock()
		defer source.mu.Unlock()
		return source.fetches >= 2
	}, time.Second, 5*time.Millisecond, "change must trigger a rebuild")

	require.NoError(t, feed.Close())
	select {
	case err := <-done:
		assert.NoError(t, err, "clean close is not an error")
	case <-time.After(time.Second):
		t.Fatal("pump did not stop after the feed closed")
	}
}

func TestRunFeed_ReturnsTerminalFeedError(t *testing.T) {
	c, _, _ := newTestBoard(t)
	feed := realtime.NewMemoryFeed()
	feed.Fail(errBackendDown)

	err := RunFeed(context.Background(), feed, c)

	assert.ErrorIs(t, err, errBackendDown)
}

func TestRunFeed_StopsOnContextCancel(t *testing.T) {
	c, _, _ := newTestBoard(t)
	feed := realtime.NewMemoryFeed()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- RunFeed(ctx, feed, c)
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("pump did not stop after cancellation")
	}
}
