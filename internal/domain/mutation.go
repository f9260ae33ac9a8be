package domain

import "time"

// EventCreate is the payload for creating one scheduled event through the
// persistence collaborator. ClientRef is the caller's temporary id; a backend
// that echoes it on the realtime feed enables exact optimistic reconciliation.
type EventCreate struct {
	ClientRef   string
	LessonID    string
	Start       time.Time
	DurationMin int
	Location    string
}

// EventPatch updates a subset of an event's scheduling fields. Nil fields are
// left untouched.
type EventPatch struct {
	Start       *time.Time
	DurationMin *int
	Location    *string
	Status      *EventStatus
}

// IsZero reports whether the patch changes nothing.
func (p EventPatch) IsZero() bool {
	return p.Start == nil && p.DurationMin == nil && p.Location == nil && p.Status == nil
}
