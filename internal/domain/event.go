package domain

import "time"

// Commission carries the denormalized commission terms a lesson was sold under.
// The engine only transports these values; revenue math happens elsewhere.
type Commission struct {
	Type CommissionType
	CPH  float64
}

// EventData is the mutable scheduling state of an event. Everything else on
// EventNode is identity or denormalized booking context and never changes.
type EventData struct {
	Start       time.Time
	DurationMin int
	Location    string
	Status      EventStatus
}

// EventNode is one scheduled lesson occurrence on the board. A node is owned
// by exactly one teacher queue at a time.
type EventNode struct {
	ID                string
	LessonID          string
	BookingID         string
	BookingLeaderName string
	BookingStudents   []string
	CapacityStudents  int
	PricePerStudent   float64
	CategoryEquipment string
	CapacityEquipment int
	Commission        Commission
	Data              EventData
}

// Start returns the scheduled start instant.
func (e EventNode) Start() time.Time {
	return e.Data.Start
}

// End returns the exclusive end instant of the [start, start+duration) interval.
func (e EventNode) End() time.Time {
	return e.Data.Start.Add(time.Duration(e.Data.DurationMin) * time.Minute)
}

// Clone returns a deep copy of the node.
func (e EventNode) Clone() EventNode {
	c := e
	if e.BookingStudents != nil {
		c.BookingStudents = make([]string, len(e.BookingStudents))
		copy(c.BookingStudents, e.BookingStudents)
	}
	return c
}
