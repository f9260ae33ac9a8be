package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mresler/dayboard/internal/domain"
)

var fixtureCounter atomic.Int64

// Day is the fixed operating day fixtures schedule against.
var Day = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

// At returns the instant on the fixture day at the given "HH:MM" clock time.
func At(clock string) time.Time {
	t, err := domain.AtClock(Day, clock)
	if err != nil {
		panic(fmt.Sprintf("bad fixture clock %q: %v", clock, err))
	}
	return t
}

// Booking options

type BookingOption func(*domain.Booking)

func WithCapacity(students int) BookingOption {
	return func(b *domain.Booking) {
		b.CapacityStudents = students
	}
}

func WithStudents(names ...string) BookingOption {
	return func(b *domain.Booking) {
		b.Students = names
		b.CapacityStudents = len(names)
	}
}

func WithLesson(l domain.Lesson) BookingOption {
	return func(b *domain.Booking) {
		b.Lessons = append(b.Lessons, l)
	}
}

// NewTestBooking builds a single-student booking with no lessons.
func NewTestBooking(leader string, opts ...BookingOption) domain.Booking {
	n := fixtureCounter.Add(1)
	b := domain.Booking{
		ID:                fmt.Sprintf("bk-%03d", n),
		LeaderName:        leader,
		Students:          []string{leader},
		CapacityStudents:  1,
		PricePerStudent:   45,
		CategoryEquipment: "none",
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Lesson options

type LessonOption func(*domain.Lesson)

func WithEvent(clock string, durationMin int) LessonOption {
	return func(l *domain.Lesson) {
		n := fixtureCounter.Add(1)
		l.Events = append(l.Events, domain.LessonEvent{
			ID:          fmt.Sprintf("ev-%03d", n),
			Start:       At(clock),
			DurationMin: durationMin,
			Location:    "north beach",
			Status:      domain.EventPlanned,
		})
	}
}

func WithEventStatus(s domain.EventStatus) LessonOption {
	return func(l *domain.Lesson) {
		for i := range l.Events {
			l.Events[i].Status = s
		}
	}
}

// NewTestLesson builds a lesson for the given teacher with no events.
func NewTestLesson(teacherID string, opts ...LessonOption) domain.Lesson {
	n := fixtureCounter.Add(1)
	l := domain.Lesson{
		ID:        fmt.Sprintf("ls-%03d", n),
		TeacherID: teacherID,
		Commission: domain.Commission{
			Type: domain.CommissionPerHour,
			CPH:  20,
		},
	}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

// NewTestTeacher builds a roster entry with a unique id.
func NewTestTeacher(username string) domain.Teacher {
	return domain.Teacher{ID: uuid.New().String(), Username: username}
}

// NewTestEventNode builds a standalone event node at the given clock time.
func NewTestEventNode(clock string, durationMin int) domain.EventNode {
	n := fixtureCounter.Add(1)
	return domain.EventNode{
		ID:                fmt.Sprintf("ev-%03d", n),
		LessonID:          fmt.Sprintf("ls-%03d", n),
		BookingID:         fmt.Sprintf("bk-%03d", n),
		BookingLeaderName: "Ada",
		BookingStudents:   []string{"Ada"},
		CapacityStudents:  1,
		PricePerStudent:   45,
		Data: domain.EventData{
			Start:       At(clock),
			DurationMin: durationMin,
			Location:    "north beach",
			Status:      domain.EventPlanned,
		},
	}
}
