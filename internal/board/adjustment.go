package board

import (
	"sort"
	"time"

	"github.com/mresler/dayboard/internal/domain"
	"github.com/mresler/dayboard/internal/schedule"
)

// SessionState names the adjustment-mode states. Transitions:
// closed --enter--> open --propose--> open-dirty
// --commit(partial fail)--> open-dirty --commit(success)--> closed;
// cancel and forced invalidation reach closed from any state.
type SessionState string

const (
	SessionClosed    SessionState = "closed"
	SessionOpen      SessionState = "open"
	SessionOpenDirty SessionState = "open_dirty"
)

// Delta is one proposed change to a snapshot event: a new start, duration,
// location, or any combination. Nil fields keep the snapshot value.
type Delta struct {
	EventID     string
	Start       *time.Time
	DurationMin *int
	Location    *string
}

// adjustmentSession is a cascade-edit session over a set of teachers. All
// proposals apply to the snapshot only; live queues are untouched until the
// committed changes come back through the realtime feed.
type adjustmentSession struct {
	teacherIDs map[string]bool
	snapshot   map[string]*schedule.Queue // teacherID -> queue with proposals applied
	deltas     map[string]Delta           // eventID -> accumulated delta
	dirty      bool
	failed     []string // event ids from the last failed commit
}

func newAdjustmentSession(queues []*schedule.Queue) *adjustmentSession {
	s := &adjustmentSession{
		teacherIDs: make(map[string]bool, len(queues)),
		snapshot:   make(map[string]*schedule.Queue, len(queues)),
		deltas:     make(map[string]Delta),
	}
	for _, q := range queues {
		s.teacherIDs[q.TeacherID] = true
		s.snapshot[q.TeacherID] = q.Clone()
	}
	return s
}

func (s *adjustmentSession) covers(teacherID string) bool {
	return s.teacherIDs[teacherID]
}

func (s *adjustmentSession) state() SessionState {
	if s.dirty {
		return SessionOpenDirty
	}
	return SessionOpen
}

// findEvent locates a snapshot event and its owning queue.
func (s *adjustmentSession) findEvent(eventID string) (*schedule.Queue, domain.EventNode, bool) {
	for _, q := range s.snapshot {
		if ev, ok := q.Event(eventID); ok {
			return q, ev, true
		}
	}
	return nil, domain.EventNode{}, false
}

// propose applies a delta to the snapshot. On conflict the snapshot is left
// exactly as it was, prior proposals included.
func (s *adjustmentSession) propose(d Delta) error {
	q, ev, ok := s.findEvent(d.EventID)
	if !ok {
		return ErrEventNotInSnapshot
	}

	changed := ev.Clone()
	if d.Start != nil {
		changed.Data.Start = *d.Start
	}
	if d.DurationMin != nil {
		changed.Data.DurationMin = *d.DurationMin
	}
	if d.Location != nil {
		changed.Data.Location = *d.Location
	}

	// Trial insert on a clone so rejection leaves the snapshot intact.
	trial := q.Clone()
	trial.Remove(d.EventID)
	if err := trial.Insert(changed); err != nil {
		return ErrSlotConflict
	}

	s.snapshot[q.TeacherID] = trial
	s.deltas[d.EventID] = mergeDelta(s.deltas[d.EventID], d)
	s.dirty = true
	s.failed = nil
	return nil
}

// mergeDelta folds a new proposal for the same event onto an earlier one.
func mergeDelta(old, next Delta) Delta {
	merged := old
	merged.EventID = next.EventID
	if next.Start != nil {
		merged.Start = next.Start
	}
	if next.DurationMin != nil {
		merged.DurationMin = next.DurationMin
	}
	if next.Location != nil {
		merged.Location = next.Location
	}
	return merged
}

// pendingDeltas returns the accumulated deltas in a stable event-id order.
func (s *adjustmentSession) pendingDeltas() []Delta {
	ids := make([]string, 0, len(s.deltas))
	for id := range s.deltas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Delta, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.deltas[id])
	}
	return out
}

func (d Delta) patch() domain.EventPatch {
	return domain.EventPatch{
		Start:       d.Start,
		DurationMin: d.DurationMin,
		Location:    d.Location,
	}
}
