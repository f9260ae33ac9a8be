package board

import (
	"context"
	"sync"
	"time"

	"github.com/mresler/dayboard/internal/domain"
)

// fakeSource serves canned day data and lets tests swap it mid-flight, the
// way another admin's write would change what a refetch returns.
type fakeSource struct {
	mu       sync.Mutex
	bookings []domain.Booking
	teachers []domain.Teacher
	err      error
	fetches  int
}

func (f *fakeSource) set(bookings []domain.Booking, teachers []domain.Teacher) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = bookings
	f.teachers = teachers
}

func (f *fakeSource) DayBookings(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	return f.bookings, f.err
}

func (f *fakeSource) ActiveTeachers(ctx context.Context, day time.Time) ([]domain.Teacher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.teachers, f.err
}

// fakePersister records mutations and fails on demand.
type fakePersister struct {
	mu          sync.Mutex
	failCreate  error
	failUpdates map[string]error // eventID -> error

	creates []domain.EventCreate
	updates []string // event ids in call order
}

func (f *fakePersister) CreateEvent(ctx context.Context, req domain.EventCreate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return f.failCreate
	}
	f.creates = append(f.creates, req)
	return nil
}

func (f *fakePersister) UpdateEvent(ctx context.Context, eventID string, patch domain.EventPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failUpdates[eventID]; ok {
		return err
	}
	f.updates = append(f.updates, eventID)
	return nil
}

func (f *fakePersister) createdRefs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.creates))
	for _, c := range f.creates {
		out = append(out, c.ClientRef)
	}
	return out
}
