package domain

import "time"

// Teacher is an entry from the active-day roster.
type Teacher struct {
	ID       string
	Username string
}

// LessonEvent is one timed occurrence of a lesson as delivered by the
// booking data source.
type LessonEvent struct {
	ID          string
	Start       time.Time
	DurationMin int
	Location    string
	Status      EventStatus
}

// Lesson groups the events a single teacher delivers for one booking.
// TeacherID may be empty when no teacher has been assigned yet.
type Lesson struct {
	ID         string
	TeacherID  string
	Commission Commission
	Events     []LessonEvent
}

// Booking is a day-scoped, read-only view of a customer booking with its
// lessons. The engine never mutates bookings; it only derives queues from them.
type Booking struct {
	ID                string
	LeaderName        string
	Students          []string
	CapacityStudents  int
	PricePerStudent   float64
	CategoryEquipment string
	CapacityEquipment int
	Lessons           []Lesson
}

// Lesson returns the booking's lesson with the given id.
func (b Booking) Lesson(lessonID string) (Lesson, bool) {
	for _, l := range b.Lessons {
		if l.ID == lessonID {
			return l, true
		}
	}
	return Lesson{}, false
}
