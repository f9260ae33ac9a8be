package schedule

import (
	"fmt"

	"github.com/mresler/dayboard/internal/domain"
)

// SkippedLesson records a lesson (or one of its events) that could not be
// placed on the board. Skips are reported, never fatal.
type SkippedLesson struct {
	BookingID string
	LessonID  string
	Reason    string
}

// Registry holds the full set of teacher queues derived from one day's
// authoritative booking data. It is a pure product of its inputs: rebuilding
// from identical bookings and roster yields identical queues.
type Registry struct {
	queues    []*Queue
	byTeacher map[string]*Queue
	skipped   []SkippedLesson
}

// BuildRegistry creates one queue per active teacher and inserts an event
// node for every event of every lesson of the given bookings. Lessons with no
// assigned teacher, lessons whose teacher is not on the roster, and events
// that would overlap an already-placed event are skipped and reported.
func BuildRegistry(bookings []domain.Booking, roster []domain.Teacher) *Registry {
	r := &Registry{byTeacher: make(map[string]*Queue, len(roster))}
	for _, t := range roster {
		q := NewQueue(t.ID, t.Username)
		r.queues = append(r.queues, q)
		r.byTeacher[t.ID] = q
	}

	for _, b := range bookings {
		for _, l := range b.Lessons {
			if l.TeacherID == "" {
				r.skipped = append(r.skipped, SkippedLesson{
					BookingID: b.ID, LessonID: l.ID,
					Reason: "no teacher assigned",
				})
				continue
			}
			q, ok := r.byTeacher[l.TeacherID]
			if !ok {
				r.skipped = append(r.skipped, SkippedLesson{
					BookingID: b.ID, LessonID: l.ID,
					Reason: fmt.Sprintf("teacher %s not on today's roster", l.TeacherID),
				})
				continue
			}
			for _, ev := range l.Events {
				node := NewEventNode(b, l, ev)
				if err := q.Insert(node); err != nil {
					r.skipped = append(r.skipped, SkippedLesson{
						BookingID: b.ID, LessonID: l.ID,
						Reason: fmt.Sprintf("event %s: %v", ev.ID, err),
					})
				}
			}
		}
	}
	return r
}

// NewEventNode builds the denormalized event node the board renders, carrying
// booking and commission context alongside the event's own scheduling data.
func NewEventNode(b domain.Booking, l domain.Lesson, ev domain.LessonEvent) domain.EventNode {
	students := make([]string, len(b.Students))
	copy(students, b.Students)
	return domain.EventNode{
		ID:                ev.ID,
		LessonID:          l.ID,
		BookingID:         b.ID,
		BookingLeaderName: b.LeaderName,
		BookingStudents:   students,
		CapacityStudents:  b.CapacityStudents,
		PricePerStudent:   b.PricePerStudent,
		CategoryEquipment: b.CategoryEquipment,
		CapacityEquipment: b.CapacityEquipment,
		Commission:        l.Commission,
		Data: domain.EventData{
			Start:       ev.Start,
			DurationMin: ev.DurationMin,
			Location:    ev.Location,
			Status:      ev.Status,
		},
	}
}

// Queues returns the registry's queues in roster order.
func (r *Registry) Queues() []*Queue {
	out := make([]*Queue, len(r.queues))
	copy(out, r.queues)
	return out
}

// Queue returns the queue for the given teacher, if the teacher is active today.
func (r *Registry) Queue(teacherID string) (*Queue, bool) {
	q, ok := r.byTeacher[teacherID]
	return q, ok
}

// Skipped returns the lessons that could not be placed during the build.
func (r *Registry) Skipped() []SkippedLesson {
	out := make([]SkippedLesson, len(r.skipped))
	copy(out, r.skipped)
	return out
}
