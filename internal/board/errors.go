package board

import "errors"

var (
	// ErrTeacherNotOnBoard indicates the lesson's teacher has no active
	// queue on today's board.
	ErrTeacherNotOnBoard = errors.New("teacher is not on today's board")

	// ErrEventCreateFailed indicates the persistence call for a new event
	// failed; the optimistic entry has been rolled back.
	ErrEventCreateFailed = errors.New("event creation failed")

	// ErrSlotConflict indicates a proposed adjustment would overlap an
	// event in the session snapshot. The prior valid proposal is kept.
	ErrSlotConflict = errors.New("adjustment conflicts with a snapshot event")

	// ErrAlreadyAdjusting indicates an adjustment session is already open.
	ErrAlreadyAdjusting = errors.New("an adjustment session is already open")

	// ErrAdjustmentConflict indicates live data changed under an open
	// adjustment session; the session has been force-closed.
	ErrAdjustmentConflict = errors.New("live data changed under the adjustment session")

	// ErrNoAdjustmentSession indicates an adjustment operation was called
	// with no session open.
	ErrNoAdjustmentSession = errors.New("no adjustment session is open")

	// ErrEventNotInSnapshot indicates a delta names an event outside the
	// session's snapshot.
	ErrEventNotInSnapshot = errors.New("event is not part of the adjustment snapshot")

	// ErrAdjustmentCommitFailed indicates one or more per-event persistence
	// calls failed during commit; the session stays open for retry or cancel.
	ErrAdjustmentCommitFailed = errors.New("adjustment commit failed for one or more events")
)
