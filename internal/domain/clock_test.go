package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOf(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Lisbon")
	require.NoError(t, err)

	at := time.Date(2026, 6, 15, 17, 42, 9, 12, loc)
	day := DayOf(at)

	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, loc), day)
	assert.Equal(t, loc, day.Location(), "location must survive truncation")
}

func TestAtClock(t *testing.T) {
	day := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	at, err := AtClock(day, "09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 15, 9, 30, 0, 0, time.UTC), at)

	_, err = AtClock(day, "half nine")
	assert.Error(t, err)
}

func TestEventNode_EndAndClone(t *testing.T) {
	n := EventNode{
		BookingStudents: []string{"Ada", "Bo"},
		Data: EventData{
			Start:       time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC),
			DurationMin: 90,
		},
	}

	assert.Equal(t, time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC), n.End())

	c := n.Clone()
	c.BookingStudents[0] = "Zed"
	assert.Equal(t, "Ada", n.BookingStudents[0], "clone must not share the student slice")
}
