package schedule

import (
	"testing"
	"time"

	"github.com/mresler/dayboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPolicy() SlotPolicy {
	return SlotPolicy{GapMin: 15, StepMin: 15, MinDurationMin: 30, MaxDurationMin: 180}
}

func TestQueueInsert_KeepsAscendingOrder(t *testing.T) {
	q := NewQueue("t-1", "maria")

	require.NoError(t, q.Insert(testutil.NewTestEventNode("13:00", 60)))
	require.NoError(t, q.Insert(testutil.NewTestEventNode("09:00", 60)))
	require.NoError(t, q.Insert(testutil.NewTestEventNode("11:00", 60)))

	events := q.Events()
	require.Len(t, events, 3)
	assert.Equal(t, testutil.At("09:00"), events[0].Start())
	assert.Equal(t, testutil.At("11:00"), events[1].Start())
	assert.Equal(t, testutil.At("13:00"), events[2].Start())
}

func TestQueueInsert_RejectsOverlap(t *testing.T) {
	q := NewQueue("t-1", "maria")
	require.NoError(t, q.Insert(testutil.NewTestEventNode("09:00", 60)))

	// Partial overlap from the left and right, and full containment.
	assert.ErrorIs(t, q.Insert(testutil.NewTestEventNode("08:30", 60)), ErrOverlap)
	assert.ErrorIs(t, q.Insert(testutil.NewTestEventNode("09:30", 60)), ErrOverlap)
	assert.ErrorIs(t, q.Insert(testutil.NewTestEventNode("09:15", 15)), ErrOverlap)
	assert.Equal(t, 1, q.Len())
}

func TestQueueInsert_RejectsZeroWidthAtOccupiedStart(t *testing.T) {
	q := NewQueue("t-1", "maria")
	require.NoError(t, q.Insert(testutil.NewTestEventNode("09:00", 60)))

	zero := testutil.NewTestEventNode("09:00", 0)
	assert.ErrorIs(t, q.Insert(zero), ErrOverlap)
}

func TestQueueInsert_AllowsTouchingBoundaries(t *testing.T) {
	q := NewQueue("t-1", "maria")
	require.NoError(t, q.Insert(testutil.NewTestEventNode("09:00", 60)))
	require.NoError(t, q.Insert(testutil.NewTestEventNode("10:00", 60)))
	assert.Equal(t, 2, q.Len())
}

func TestQueueRemove(t *testing.T) {
	q := NewQueue("t-1", "maria")
	ev := testutil.NewTestEventNode("09:00", 60)
	require.NoError(t, q.Insert(ev))

	assert.True(t, q.Remove(ev.ID))
	assert.False(t, q.Remove(ev.ID))
	assert.Equal(t, 0, q.Len())
}

func TestQueueClone_IsDetached(t *testing.T) {
	q := NewQueue("t-1", "maria")
	ev := testutil.NewTestEventNode("09:00", 60)
	require.NoError(t, q.Insert(ev))

	clone := q.Clone()
	require.NoError(t, clone.Insert(testutil.NewTestEventNode("11:00", 60)))
	clone.Remove(ev.ID)

	assert.Equal(t, 1, q.Len(), "live queue must not see clone mutations")
	assert.Equal(t, 1, clone.Len())
}

func TestNextAvailableSlot_EmptyQueueReturnsEarliest(t *testing.T) {
	q := NewQueue("t-1", "maria")

	start, dur := q.NextAvailableSlot(testutil.At("09:00"), 60, defaultPolicy())

	assert.Equal(t, testutil.At("09:00"), start)
	assert.Equal(t, 60, dur)
}

func TestNextAvailableSlot_AfterBusyHourWithGap(t *testing.T) {
	q := NewQueue("t-1", "maria")
	require.NoError(t, q.Insert(testutil.NewTestEventNode("09:00", 60)))

	start, _ := q.NextAvailableSlot(testutil.At("09:00"), 60, defaultPolicy())
	assert.Equal(t, testutil.At("10:15"), start, "gap of 15 pushes past 10:00")

	p := defaultPolicy()
	p.GapMin = 0
	start, _ = q.NextAvailableSlot(testutil.At("09:00"), 60, p)
	assert.Equal(t, testutil.At("10:00"), start, "zero gap permits back-to-back")
}

func TestNextAvailableSlot_FitsBetweenEvents(t *testing.T) {
	q := NewQueue("t-1", "maria")
	require.NoError(t, q.Insert(testutil.NewTestEventNode("09:00", 60)))
	require.NoError(t, q.Insert(testutil.NewTestEventNode("12:00", 60)))

	p := defaultPolicy()
	p.GapMin = 0
	start, _ := q.NextAvailableSlot(testutil.At("09:00"), 60, p)
	assert.Equal(t, testutil.At("10:00"), start)
}

func TestNextAvailableSlot_SkipsTooSmallGapBetweenEvents(t *testing.T) {
	q := NewQueue("t-1", "maria")
	require.NoError(t, q.Insert(testutil.NewTestEventNode("09:00", 60)))
	require.NoError(t, q.Insert(testutil.NewTestEventNode("10:30", 60)))

	// The 10:00–10:30 hole cannot take 60 minutes; next candidate follows
	// the second event plus the gap.
	start, _ := q.NextAvailableSlot(testutil.At("09:00"), 60, defaultPolicy())
	assert.Equal(t, testutil.At("11:45"), start)
}

func TestNextAvailableSlot_RoundsEarliestUpToStep(t *testing.T) {
	q := NewQueue("t-1", "maria")

	start, _ := q.NextAvailableSlot(testutil.At("09:07"), 60, defaultPolicy())
	assert.Equal(t, testutil.At("09:15"), start)
}

func TestNextAvailableSlot_ClampsDuration(t *testing.T) {
	q := NewQueue("t-1", "maria")
	p := defaultPolicy()

	_, dur := q.NextAvailableSlot(testutil.At("09:00"), 10, p)
	assert.Equal(t, p.MinDurationMin, dur)

	_, dur = q.NextAvailableSlot(testutil.At("09:00"), 600, p)
	assert.Equal(t, p.MaxDurationMin, dur)
}

func TestNextAvailableSlot_QueueUnchanged(t *testing.T) {
	q := NewQueue("t-1", "maria")
	require.NoError(t, q.Insert(testutil.NewTestEventNode("09:00", 60)))
	before := q.Events()

	q.NextAvailableSlot(testutil.At("09:00"), 60, defaultPolicy())

	assert.Equal(t, before, q.Events())
}

func TestRoundUpToStep_ExactMultipleUnchanged(t *testing.T) {
	at := testutil.At("10:30")
	assert.True(t, roundUpToStep(at, 15).Equal(at))
	assert.True(t, roundUpToStep(at, 0).Equal(at), "non-positive step leaves time untouched")
}

func TestRoundUpToStep_CrossesIntoNextHour(t *testing.T) {
	got := roundUpToStep(testutil.At("10:59"), 30)
	assert.Equal(t, testutil.At("11:00"), got)
}

func TestNextAvailableSlot_GapExpansionNeverIntersects(t *testing.T) {
	q := NewQueue("t-1", "maria")
	require.NoError(t, q.Insert(testutil.NewTestEventNode("09:00", 45)))
	require.NoError(t, q.Insert(testutil.NewTestEventNode("11:00", 90)))

	p := defaultPolicy()
	start, dur := q.NextAvailableSlot(testutil.At("08:00"), 60, p)

	gap := time.Duration(p.GapMin) * time.Minute
	span := time.Duration(dur) * time.Minute
	for _, ev := range q.Events() {
		noOverlap := !start.Add(-gap).Before(ev.End()) || !ev.Start().Before(start.Add(span).Add(gap))
		assert.True(t, noOverlap, "slot %v intersects event at %v", start, ev.Start())
	}
}
