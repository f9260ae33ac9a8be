package board

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mresler/dayboard/internal/domain"
	"github.com/mresler/dayboard/internal/realtime"
	"github.com/mresler/dayboard/internal/schedule"
)

// DataSource is the read-only booking and roster source for one operating day.
type DataSource interface {
	DayBookings(ctx context.Context, day time.Time) ([]domain.Booking, error)
	ActiveTeachers(ctx context.Context, day time.Time) ([]domain.Teacher, error)
}

// Persister is the external event persistence collaborator. A timeout is
// indistinguishable from an explicit failure to the coordinator.
type Persister interface {
	CreateEvent(ctx context.Context, req domain.EventCreate) error
	UpdateEvent(ctx context.Context, eventID string, patch domain.EventPatch) error
}

// MergedEvent is one row of the merged per-teacher view: an authoritative
// queue event, or a pending optimistic one.
type MergedEvent struct {
	Node    domain.EventNode
	Pending bool
}

// Coordinator composes the queue registry, optimistic overlay, controller
// settings, and the adjustment session for one board session. It is the only
// mutation entry point for both the UI and the realtime handler. One instance
// exists per active board view, constructed with its collaborators and held
// by reference, never as a package global.
//
// A mutex serializes the UI goroutine against the feed pump so consumers
// never observe a partially rebuilt registry.
type Coordinator struct {
	day       time.Time
	source    DataSource
	persister Persister
	observer  Observer

	mu       sync.Mutex
	registry *schedule.Registry
	overlay  *Overlay
	settings domain.ControllerSettings
	session  *adjustmentSession
}

// NewCoordinator creates a coordinator for the given operating day. Call
// Refresh before first use to load the board.
func NewCoordinator(day time.Time, settings domain.ControllerSettings, source DataSource, persister Persister, observer Observer) *Coordinator {
	return &Coordinator{
		day:       domain.DayOf(day),
		source:    source,
		persister: persister,
		observer:  observerOrNoop(observer),
		registry:  schedule.BuildRegistry(nil, nil),
		overlay:   NewOverlay(),
		settings:  settings,
	}
}

// Day returns the operating day the board is scoped to.
func (c *Coordinator) Day() time.Time {
	return c.day
}

// Refresh refetches the day's bookings and roster and rebuilds the queue
// registry. The fetch happens outside the lock; the swap is atomic.
func (c *Coordinator) Refresh(ctx context.Context) error {
	start := time.Now()
	bookings, err := c.source.DayBookings(ctx, c.day)
	if err != nil {
		c.observe(ctx, "refresh", start, err, nil)
		return fmt.Errorf("fetching day bookings: %w", err)
	}
	teachers, err := c.source.ActiveTeachers(ctx, c.day)
	if err != nil {
		c.observe(ctx, "refresh", start, err, nil)
		return fmt.Errorf("fetching active teachers: %w", err)
	}

	registry := schedule.BuildRegistry(bookings, teachers)

	c.mu.Lock()
	c.registry = registry
	c.mu.Unlock()

	c.observe(ctx, "refresh", start, nil, map[string]any{
		"teachers": len(teachers),
		"bookings": len(bookings),
		"skipped":  len(registry.Skipped()),
	})
	return nil
}

// CreateEvent schedules a new event for one lesson of the booking: it finds
// the next feasible slot on the teacher's queue starting at the controller
// submit time, publishes an optimistic entry, and invokes the external create
// call. On persistence failure the optimistic entry is rolled back and
// ErrEventCreateFailed is returned; on success the entry stays pending until
// the realtime feed confirms it.
func (c *Coordinator) CreateEvent(ctx context.Context, booking domain.Booking, lessonID string) (OptimisticEvent, error) {
	start := time.Now()

	lesson, ok := booking.Lesson(lessonID)
	if !ok {
		err := fmt.Errorf("booking %s has no lesson %s", booking.ID, lessonID)
		c.observe(ctx, "create_event", start, err, nil)
		return OptimisticEvent{}, err
	}

	c.mu.Lock()
	queue, ok := c.registry.Queue(lesson.TeacherID)
	if !ok {
		c.mu.Unlock()
		c.observe(ctx, "create_event", start, ErrTeacherNotOnBoard, map[string]any{"teacher_id": lesson.TeacherID})
		return OptimisticEvent{}, ErrTeacherNotOnBoard
	}

	settings := c.settings
	earliest, err := domain.AtClock(c.day, settings.SubmitTime)
	if err != nil {
		c.mu.Unlock()
		c.observe(ctx, "create_event", start, err, nil)
		return OptimisticEvent{}, err
	}

	// Slot-find over the queue plus this teacher's pending entries so rapid
	// submissions do not stack onto the same slot.
	merged := queue.Clone()
	for _, pending := range c.overlay.ByTeacher(lesson.TeacherID) {
		_ = merged.Insert(pending.Node)
	}
	slotStart, durMin := merged.NextAvailableSlot(
		earliest,
		settings.DurationForCapacity(booking.CapacityStudents),
		schedule.PolicyFrom(settings),
	)

	opt := OptimisticEvent{
		TempID:    uuid.New().String(),
		TeacherID: lesson.TeacherID,
	}
	opt.Node = schedule.NewEventNode(booking, lesson, domain.LessonEvent{
		ID:          opt.TempID,
		Start:       slotStart,
		DurationMin: durMin,
		Location:    settings.Location,
		Status:      domain.EventPlanned,
	})
	c.overlay.Add(opt)
	c.mu.Unlock()

	req := domain.EventCreate{
		ClientRef:   opt.TempID,
		LessonID:    lessonID,
		Start:       slotStart,
		DurationMin: durMin,
		Location:    settings.Location,
	}
	if err := c.persister.CreateEvent(ctx, req); err != nil {
		c.mu.Lock()
		c.overlay.Remove(opt.TempID)
		c.mu.Unlock()
		c.observe(ctx, "create_event", start, err, map[string]any{"lesson_id": lessonID})
		return OptimisticEvent{}, fmt.Errorf("%w: %v", ErrEventCreateFailed, err)
	}

	c.observe(ctx, "create_event", start, nil, map[string]any{
		"lesson_id": lessonID,
		"start":     slotStart.Format(time.RFC3339),
		"duration":  durMin,
	})
	return opt, nil
}

// EnterAdjustmentMode snapshots the named teachers' queues and opens a
// cascade-edit session over them. A single session exists per board; entering
// while one is open returns ErrAlreadyAdjusting.
func (c *Coordinator) EnterAdjustmentMode(teacherIDs []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return ErrAlreadyAdjusting
	}
	queues := make([]*schedule.Queue, 0, len(teacherIDs))
	for _, id := range teacherIDs {
		q, ok := c.registry.Queue(id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrTeacherNotOnBoard, id)
		}
		queues = append(queues, q)
	}
	c.session = newAdjustmentSession(queues)
	return nil
}

// ProposeAdjustment applies a time/location delta to the session snapshot.
// Live queues are never touched. A delta that would overlap a snapshot event
// is rejected with ErrSlotConflict and the prior valid proposal is preserved.
func (c *Coordinator) ProposeAdjustment(delta Delta) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return ErrNoAdjustmentSession
	}
	return c.session.propose(delta)
}

// CommitAdjustment issues one persistence call per changed event. On full
// success the session is discarded. On any failure the session stays open and
// dirty, and the ids of the events whose updates failed are returned alongside
// ErrAdjustmentCommitFailed, for retry or cancel.
func (c *Coordinator) CommitAdjustment(ctx context.Context) ([]string, error) {
	start := time.Now()

	c.mu.Lock()
	sess := c.session
	if sess == nil {
		c.mu.Unlock()
		return nil, ErrNoAdjustmentSession
	}
	deltas := sess.pendingDeltas()
	c.mu.Unlock()

	var failed []string
	for _, d := range deltas {
		if err := c.persister.UpdateEvent(ctx, d.EventID, d.patch()); err != nil {
			failed = append(failed, d.EventID)
		}
	}

	c.mu.Lock()
	// The session may have been force-closed by a realtime conflict while
	// the updates were in flight; in that case there is nothing to settle.
	if c.session == sess {
		if len(failed) == 0 {
			c.session = nil
		} else {
			sess.dirty = true
			sess.failed = failed
		}
	}
	c.mu.Unlock()

	if len(failed) > 0 {
		c.observe(ctx, "commit_adjustment", start, ErrAdjustmentCommitFailed, map[string]any{"failed": len(failed)})
		return failed, ErrAdjustmentCommitFailed
	}
	c.observe(ctx, "commit_adjustment", start, nil, map[string]any{"events": len(deltas)})
	return nil, nil
}

// CancelAdjustment discards the session synchronously. No persistence calls,
// never fails, safe to call with no session open.
func (c *Coordinator) CancelAdjustment() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

// OnRealtimeEvent folds one authoritative change into the board: it clears a
// matching optimistic entry, force-invalidates an adjustment session touching
// the change's teacher, and rebuilds the queue registry from current data.
// ErrAdjustmentConflict is returned when a session was invalidated so the
// caller can surface it; the change itself has still been applied.
func (c *Coordinator) OnRealtimeEvent(ctx context.Context, change realtime.Change) error {
	start := time.Now()

	if !change.Valid() {
		err := fmt.Errorf("malformed realtime change (type %q, entity %q)", change.Type, change.Entity)
		c.observe(ctx, "realtime_event", start, err, nil)
		return err
	}

	c.mu.Lock()
	if change.Entity == realtime.EntityEvent && change.Type != realtime.ChangeDeleted {
		c.overlay.MatchAndRemove(change.ClientRef, change.LessonID, change.Start)
	}
	invalidated := false
	if c.session != nil && change.TeacherID != "" && c.session.covers(change.TeacherID) {
		c.session = nil
		invalidated = true
	}
	c.mu.Unlock()

	if err := c.Refresh(ctx); err != nil {
		c.observe(ctx, "realtime_event", start, err, nil)
		return err
	}

	if invalidated {
		c.observe(ctx, "realtime_event", start, ErrAdjustmentConflict, map[string]any{"teacher_id": change.TeacherID})
		return ErrAdjustmentConflict
	}
	c.observe(ctx, "realtime_event", start, nil, map[string]any{
		"type":   string(change.Type),
		"entity": change.Entity,
	})
	return nil
}

// MergedEvents returns the teacher's authoritative events overlaid with
// pending optimistic ones, sorted by start time. During an open adjustment
// session covering the teacher, the snapshot (with proposals applied) is
// shown instead of the live queue.
func (c *Coordinator) MergedEvents(teacherID string) []MergedEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	var base []domain.EventNode
	if c.session != nil && c.session.covers(teacherID) {
		base = c.session.snapshot[teacherID].Events()
	} else if q, ok := c.registry.Queue(teacherID); ok {
		base = q.Events()
	}

	out := make([]MergedEvent, 0, len(base))
	for _, n := range base {
		out = append(out, MergedEvent{Node: n})
	}
	for _, p := range c.overlay.ByTeacher(teacherID) {
		out = append(out, MergedEvent{Node: p.Node.Clone(), Pending: true})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Node.Start().Before(out[j].Node.Start())
	})
	return out
}

// Teachers returns the active roster in board order.
func (c *Coordinator) Teachers() []domain.Teacher {
	c.mu.Lock()
	defer c.mu.Unlock()

	queues := c.registry.Queues()
	out := make([]domain.Teacher, 0, len(queues))
	for _, q := range queues {
		out = append(out, domain.Teacher{ID: q.TeacherID, Username: q.TeacherUsername})
	}
	return out
}

// SkippedLessons returns the lessons the last rebuild could not place.
func (c *Coordinator) SkippedLessons() []schedule.SkippedLesson {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.Skipped()
}

// PendingCount returns the number of unreconciled optimistic entries.
func (c *Coordinator) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overlay.Len()
}

// SessionState reports the adjustment-mode state.
func (c *Coordinator) SessionState() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return SessionClosed
	}
	return c.session.state()
}

// SessionTeachers returns the teacher ids covered by the open session, sorted.
func (c *Coordinator) SessionTeachers() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	out := make([]string, 0, len(c.session.teacherIDs))
	for id := range c.session.teacherIDs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// FailedCommits returns the event ids whose updates failed on the last
// commit attempt.
func (c *Coordinator) FailedCommits() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	out := make([]string, len(c.session.failed))
	copy(out, c.session.failed)
	return out
}

// Settings returns the current controller settings.
func (c *Coordinator) Settings() domain.ControllerSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// SetSettings replaces the controller settings. Persisting them is the
// caller's concern.
func (c *Coordinator) SetSettings(s domain.ControllerSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	c.settings = s
	c.mu.Unlock()
	return nil
}

func (c *Coordinator) observe(ctx context.Context, op string, start time.Time, err error, fields map[string]any) {
	c.observer.ObserveBoard(ctx, BoardEvent{
		Op:       op,
		Duration: time.Since(start),
		Success:  err == nil,
		Err:      err,
		Fields:   fields,
	})
}
