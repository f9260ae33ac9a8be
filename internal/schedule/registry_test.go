package schedule

import (
	"testing"

	"github.com/mresler/dayboard/internal/domain"
	"github.com/mresler/dayboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRegistry_OneQueuePerActiveTeacher(t *testing.T) {
	teachers := []domain.Teacher{
		{ID: "t-1", Username: "maria"},
		{ID: "t-2", Username: "jonas"},
	}

	r := BuildRegistry(nil, teachers)

	require.Len(t, r.Queues(), 2)
	q, ok := r.Queue("t-1")
	require.True(t, ok)
	assert.Equal(t, "maria", q.TeacherUsername)
	assert.Equal(t, 0, q.Len())
}

func TestBuildRegistry_CarriesDenormalizedBookingContext(t *testing.T) {
	booking := testutil.NewTestBooking("Ada",
		testutil.WithStudents("Ada", "Bo"),
		testutil.WithLesson(testutil.NewTestLesson("t-1", testutil.WithEvent("09:00", 60))),
	)
	teachers := []domain.Teacher{{ID: "t-1", Username: "maria"}}

	r := BuildRegistry([]domain.Booking{booking}, teachers)

	q, ok := r.Queue("t-1")
	require.True(t, ok)
	events := q.Events()
	require.Len(t, events, 1)

	node := events[0]
	assert.Equal(t, booking.ID, node.BookingID)
	assert.Equal(t, "Ada", node.BookingLeaderName)
	assert.Equal(t, []string{"Ada", "Bo"}, node.BookingStudents)
	assert.Equal(t, 2, node.CapacityStudents)
	assert.Equal(t, domain.CommissionPerHour, node.Commission.Type)
	assert.Equal(t, testutil.At("09:00"), node.Start())
}

func TestBuildRegistry_SkipsLessonWithoutTeacher(t *testing.T) {
	booking := testutil.NewTestBooking("Ada",
		testutil.WithLesson(testutil.NewTestLesson("", testutil.WithEvent("09:00", 60))),
	)

	r := BuildRegistry([]domain.Booking{booking}, []domain.Teacher{{ID: "t-1", Username: "maria"}})

	skipped := r.Skipped()
	require.Len(t, skipped, 1)
	assert.Equal(t, booking.ID, skipped[0].BookingID)
	assert.Contains(t, skipped[0].Reason, "no teacher assigned")
}

func TestBuildRegistry_SkipsLessonOfInactiveTeacher(t *testing.T) {
	booking := testutil.NewTestBooking("Ada",
		testutil.WithLesson(testutil.NewTestLesson("t-gone", testutil.WithEvent("09:00", 60))),
	)

	r := BuildRegistry([]domain.Booking{booking}, []domain.Teacher{{ID: "t-1", Username: "maria"}})

	require.Len(t, r.Skipped(), 1)
	assert.Contains(t, r.Skipped()[0].Reason, "not on today's roster")
	q, _ := r.Queue("t-1")
	assert.Equal(t, 0, q.Len())
}

func TestBuildRegistry_ReportsOverlappingEvent(t *testing.T) {
	booking := testutil.NewTestBooking("Ada",
		testutil.WithLesson(testutil.NewTestLesson("t-1",
			testutil.WithEvent("09:00", 60),
			testutil.WithEvent("09:30", 60),
		)),
	)

	r := BuildRegistry([]domain.Booking{booking}, []domain.Teacher{{ID: "t-1", Username: "maria"}})

	q, _ := r.Queue("t-1")
	assert.Equal(t, 1, q.Len(), "second event overlaps and is not placed")
	require.Len(t, r.Skipped(), 1)
	assert.Contains(t, r.Skipped()[0].Reason, "overlaps")
}

func TestBuildRegistry_Idempotent(t *testing.T) {
	bookings := []domain.Booking{
		testutil.NewTestBooking("Ada",
			testutil.WithLesson(testutil.NewTestLesson("t-1",
				testutil.WithEvent("09:00", 60),
				testutil.WithEvent("11:00", 90),
			)),
		),
		testutil.NewTestBooking("Bo",
			testutil.WithLesson(testutil.NewTestLesson("t-2", testutil.WithEvent("10:00", 60))),
		),
	}
	teachers := []domain.Teacher{
		{ID: "t-1", Username: "maria"},
		{ID: "t-2", Username: "jonas"},
	}

	first := BuildRegistry(bookings, teachers)
	second := BuildRegistry(bookings, teachers)

	require.Len(t, second.Queues(), len(first.Queues()))
	for i, q := range first.Queues() {
		assert.Equal(t, q.Events(), second.Queues()[i].Events())
	}
	assert.Equal(t, first.Skipped(), second.Skipped())
}
