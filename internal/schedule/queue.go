package schedule

import (
	"errors"
	"sort"
	"time"

	"github.com/mresler/dayboard/internal/domain"
)

// ErrOverlap indicates an insert would collide with an event already on the queue.
var ErrOverlap = errors.New("event overlaps an existing queue event")

// Queue is one teacher's ordered, non-overlapping set of events for the
// active day. Events are kept strictly ascending by start time; the
// [start, start+duration) intervals never intersect.
type Queue struct {
	TeacherID       string
	TeacherUsername string

	events []domain.EventNode
}

// NewQueue creates an empty queue for a teacher.
func NewQueue(teacherID, username string) *Queue {
	return &Queue{TeacherID: teacherID, TeacherUsername: username}
}

// Len returns the number of events on the queue.
func (q *Queue) Len() int {
	return len(q.events)
}

// Events returns a copy of the ordered event sequence.
func (q *Queue) Events() []domain.EventNode {
	out := make([]domain.EventNode, len(q.events))
	for i, e := range q.events {
		out[i] = e.Clone()
	}
	return out
}

// Event returns the queued event with the given id.
func (q *Queue) Event(eventID string) (domain.EventNode, bool) {
	for _, e := range q.events {
		if e.ID == eventID {
			return e.Clone(), true
		}
	}
	return domain.EventNode{}, false
}

// Insert places the event at its ordered position. It returns ErrOverlap when
// the event's interval intersects an existing one; an event starting exactly
// at an occupied start is rejected even at zero width.
func (q *Queue) Insert(ev domain.EventNode) error {
	i := sort.Search(len(q.events), func(i int) bool {
		return !q.events[i].Start().Before(ev.Start())
	})
	if i > 0 && conflicts(q.events[i-1], ev) {
		return ErrOverlap
	}
	if i < len(q.events) && conflicts(q.events[i], ev) {
		return ErrOverlap
	}
	q.events = append(q.events, domain.EventNode{})
	copy(q.events[i+1:], q.events[i:])
	q.events[i] = ev
	return nil
}

// Remove deletes the event with the given id, reporting whether it was present.
func (q *Queue) Remove(eventID string) bool {
	for i, e := range q.events {
		if e.ID == eventID {
			q.events = append(q.events[:i], q.events[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the queue. Snapshots taken for adjustment
// sessions rely on clones being fully detached from the live queue.
func (q *Queue) Clone() *Queue {
	c := &Queue{TeacherID: q.TeacherID, TeacherUsername: q.TeacherUsername}
	c.events = q.Events()
	return c
}

// conflicts reports whether two half-open intervals collide. Touching
// boundaries (a ends exactly where b starts) are allowed; identical starts
// are not, regardless of duration.
func conflicts(a, b domain.EventNode) bool {
	if a.Start().Equal(b.Start()) {
		return true
	}
	return a.Start().Before(b.End()) && b.Start().Before(a.End())
}

// SlotPolicy bundles the controller knobs the slot finder applies.
type SlotPolicy struct {
	GapMin         int
	StepMin        int
	MinDurationMin int
	MaxDurationMin int
}

// PolicyFrom extracts the slot-finding knobs from controller settings.
func PolicyFrom(s domain.ControllerSettings) SlotPolicy {
	return SlotPolicy{
		GapMin:         s.GapMin,
		StepMin:        s.StepMin,
		MinDurationMin: s.MinDurationMin,
		MaxDurationMin: s.MaxDurationMin,
	}
}

// NextAvailableSlot scans the queue for the first start at or after earliest,
// rounded up to the policy step, whose interval padded by the gap clears every
// queued event. It returns the start and the duration actually used, clamped
// to the policy's duration bounds. The scan is pure: the queue is not changed.
//
// A gap of zero permits back-to-back placement; an empty queue yields the
// rounded earliest start.
func (q *Queue) NextAvailableSlot(earliest time.Time, durationMin int, p SlotPolicy) (time.Time, int) {
	dur := clamp(durationMin, p.MinDurationMin, p.MaxDurationMin)
	gap := time.Duration(p.GapMin) * time.Minute
	span := time.Duration(dur) * time.Minute

	t := roundUpToStep(earliest, p.StepMin)
	for _, ev := range q.events {
		// Padded candidate [t-gap, t+span+gap) against the raw event interval.
		if t.Add(-gap).Before(ev.End()) && ev.Start().Before(t.Add(span).Add(gap)) {
			next := roundUpToStep(ev.End().Add(gap), p.StepMin)
			if next.After(t) {
				t = next
			}
		}
	}
	return t, dur
}

// roundUpToStep rounds t up to the next multiple of stepMin minutes within
// its day. A non-positive step leaves t untouched.
func roundUpToStep(t time.Time, stepMin int) time.Time {
	if stepMin <= 0 {
		return t
	}
	midnight := domain.DayOf(t)
	offset := t.Sub(midnight)
	step := time.Duration(stepMin) * time.Minute
	rounded := (offset + step - 1) / step * step
	return midnight.Add(rounded)
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if hi >= lo && val > hi {
		return hi
	}
	return val
}
