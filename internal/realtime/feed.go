package realtime

import "time"

// ChangeType classifies an authoritative data change.
type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// EntityEvent is the entity name used for scheduled-event changes. The feed
// may also announce booking- and lesson-level changes; the board treats every
// entity the same way (refetch and rebuild) but only event changes can match
// an optimistic entry.
const EntityEvent = "event"

// Change is one authoritative state change pushed to every connected board
// session for the active day.
type Change struct {
	Type      ChangeType `json:"type"`
	Entity    string     `json:"entity"`
	EventID   string     `json:"event_id,omitempty"`
	LessonID  string     `json:"lesson_id,omitempty"`
	BookingID string     `json:"booking_id,omitempty"`
	TeacherID string     `json:"teacher_id,omitempty"`
	Start     time.Time  `json:"start,omitempty"`
	ClientRef string     `json:"client_ref,omitempty"`
}

// Valid reports whether the change carries enough shape to be applied.
func (c Change) Valid() bool {
	switch c.Type {
	case ChangeCreated, ChangeUpdated, ChangeDeleted:
	default:
		return false
	}
	return c.Entity != ""
}

// Feed is a live subscription to the day's change stream. One subscription
// exists per board session.
type Feed interface {
	// Changes yields pushed changes until the feed terminates, at which
	// point the channel is closed.
	Changes() <-chan Change

	// Err returns the terminal error after Changes closes, nil on clean shutdown.
	Err() error

	// Close tears the subscription down. Safe to call more than once.
	Close() error
}
