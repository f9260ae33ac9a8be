package schedule

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/mresler/dayboard/internal/domain"
	"github.com/mresler/dayboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomNode(rng *rand.Rand, i int) domain.EventNode {
	startMin := 8*60 + rng.Intn(10*60) // 08:00–17:59
	dur := rng.Intn(120) + 15
	return domain.EventNode{
		ID: fmt.Sprintf("ev-rand-%d", i),
		Data: domain.EventData{
			Start:       testutil.Day.Add(time.Duration(startMin) * time.Minute),
			DurationMin: dur,
			Status:      domain.EventPlanned,
		},
	}
}

// TestQueueInsert_Invariants property-tests the queue's core guarantee: after
// any sequence of inserts, accepted events stay strictly time-ordered and
// pairwise non-overlapping.
func TestQueueInsert_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		q := NewQueue("t-1", "maria")
		attempts := rng.Intn(20) + 1
		for i := 0; i < attempts; i++ {
			_ = q.Insert(randomNode(rng, i))
		}

		events := q.Events()
		for i := 1; i < len(events); i++ {
			prev, cur := events[i-1], events[i]
			assert.True(t, prev.Start().Before(cur.Start()),
				"trial %d: starts must be strictly ascending", trial)
			assert.False(t, cur.Start().Before(prev.End()),
				"trial %d: intervals must not overlap", trial)
		}
	}
}

// TestNextAvailableSlot_Invariants property-tests the slot finder: the found
// start never precedes the request, lands on the step grid, keeps the gap
// clear of every queued event, and is always insertable.
func TestNextAvailableSlot_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		q := NewQueue("t-1", "maria")
		for i := 0; i < rng.Intn(8); i++ {
			_ = q.Insert(randomNode(rng, i))
		}

		p := SlotPolicy{
			GapMin:         rng.Intn(3) * 15,
			StepMin:        []int{5, 10, 15, 30}[rng.Intn(4)],
			MinDurationMin: 30,
			MaxDurationMin: 180,
		}
		earliest := testutil.Day.Add(time.Duration(8*60+rng.Intn(6*60)) * time.Minute)
		requested := rng.Intn(240) + 1

		start, dur := q.NextAvailableSlot(earliest, requested, p)

		require.False(t, start.Before(earliest),
			"trial %d: slot %v precedes earliest %v", trial, start, earliest)
		assert.GreaterOrEqual(t, dur, p.MinDurationMin, "trial %d", trial)
		assert.LessOrEqual(t, dur, p.MaxDurationMin, "trial %d", trial)

		offset := start.Sub(testutil.Day)
		assert.Zero(t, offset%(time.Duration(p.StepMin)*time.Minute),
			"trial %d: slot %v not on the %dm grid", trial, start, p.StepMin)

		gap := time.Duration(p.GapMin) * time.Minute
		span := time.Duration(dur) * time.Minute
		for _, ev := range q.Events() {
			clear := !start.Add(-gap).Before(ev.End()) || !ev.Start().Before(start.Add(span).Add(gap))
			assert.True(t, clear,
				"trial %d: slot %v (+%dm gap %dm) intersects event [%v, %v)",
				trial, start, dur, p.GapMin, ev.Start(), ev.End())
		}

		placed := domain.EventNode{
			ID:   "ev-placed",
			Data: domain.EventData{Start: start, DurationMin: dur, Status: domain.EventPlanned},
		}
		assert.NoError(t, q.Insert(placed), "trial %d: found slot must be insertable", trial)
	}
}
