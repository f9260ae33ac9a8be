package board

import (
	"time"

	"github.com/mresler/dayboard/internal/domain"
)

// OptimisticEvent is a locally created event shown ahead of server
// confirmation. Node.ID carries the temporary id; status is implicitly
// planned. Each entry lives from local creation until either a matching
// authoritative change arrives or the failed create rolls it back.
type OptimisticEvent struct {
	TempID    string
	TeacherID string
	Node      domain.EventNode
}

// Overlay tracks pending optimistic events keyed by temporary id. Entries are
// merged into read views by the coordinator but never written into the queue
// registry. Overlay is not safe for concurrent use; the coordinator
// serializes access.
type Overlay struct {
	entries map[string]OptimisticEvent
}

// NewOverlay creates an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{entries: make(map[string]OptimisticEvent)}
}

// Add registers a pending event under its temporary id.
func (o *Overlay) Add(ev OptimisticEvent) {
	o.entries[ev.TempID] = ev
}

// Remove drops the entry with the given temporary id, reporting whether it
// was present.
func (o *Overlay) Remove(tempID string) bool {
	if _, ok := o.entries[tempID]; !ok {
		return false
	}
	delete(o.entries, tempID)
	return true
}

// Len returns the number of pending entries.
func (o *Overlay) Len() int {
	return len(o.entries)
}

// ByTeacher returns the pending entries for one teacher.
func (o *Overlay) ByTeacher(teacherID string) []OptimisticEvent {
	var out []OptimisticEvent
	for _, e := range o.entries {
		if e.TeacherID == teacherID {
			out = append(out, e)
		}
	}
	return out
}

// MatchAndRemove resolves an authoritative arrival against the pending
// entries. A non-empty clientRef matches exactly; otherwise the entry is
// matched by lesson id and start time. The matched entry is removed.
//
// Field-matching is a fallback for backends that do not echo the client
// reference; it can mis-pair rapid double submissions of the same lesson and
// time, which is why the exact path is tried first.
func (o *Overlay) MatchAndRemove(clientRef, lessonID string, start time.Time) (OptimisticEvent, bool) {
	if clientRef != "" {
		if e, ok := o.entries[clientRef]; ok {
			delete(o.entries, clientRef)
			return e, true
		}
	}
	for id, e := range o.entries {
		if e.Node.LessonID == lessonID && e.Node.Data.Start.Equal(start) {
			delete(o.entries, id)
			return e, true
		}
	}
	return OptimisticEvent{}, false
}
