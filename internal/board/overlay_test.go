package board

import (
	"testing"

	"github.com/mresler/dayboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingEvent(tempID, teacherID, lessonID, clock string) OptimisticEvent {
	node := testutil.NewTestEventNode(clock, 60)
	node.ID = tempID
	node.LessonID = lessonID
	return OptimisticEvent{TempID: tempID, TeacherID: teacherID, Node: node}
}

func TestOverlayAddRemove(t *testing.T) {
	o := NewOverlay()
	o.Add(pendingEvent("tmp-1", "t-1", "ls-1", "09:00"))

	assert.Equal(t, 1, o.Len())
	assert.True(t, o.Remove("tmp-1"))
	assert.False(t, o.Remove("tmp-1"))
	assert.Equal(t, 0, o.Len())
}

func TestOverlayByTeacher(t *testing.T) {
	o := NewOverlay()
	o.Add(pendingEvent("tmp-1", "t-1", "ls-1", "09:00"))
	o.Add(pendingEvent("tmp-2", "t-2", "ls-2", "10:00"))

	assert.Len(t, o.ByTeacher("t-1"), 1)
	assert.Len(t, o.ByTeacher("t-2"), 1)
	assert.Empty(t, o.ByTeacher("t-3"))
}

func TestOverlayMatchAndRemove_PrefersClientRef(t *testing.T) {
	o := NewOverlay()
	o.Add(pendingEvent("tmp-1", "t-1", "ls-1", "09:00"))

	matched, ok := o.MatchAndRemove("tmp-1", "ls-other", testutil.At("13:00"))

	require.True(t, ok)
	assert.Equal(t, "tmp-1", matched.TempID)
	assert.Equal(t, 0, o.Len())
}

func TestOverlayMatchAndRemove_FallsBackToFieldMatch(t *testing.T) {
	o := NewOverlay()
	o.Add(pendingEvent("tmp-1", "t-1", "ls-1", "09:00"))

	matched, ok := o.MatchAndRemove("", "ls-1", testutil.At("09:00"))

	require.True(t, ok)
	assert.Equal(t, "tmp-1", matched.TempID)
}

func TestOverlayMatchAndRemove_NoMatchLeavesEntries(t *testing.T) {
	o := NewOverlay()
	o.Add(pendingEvent("tmp-1", "t-1", "ls-1", "09:00"))

	_, ok := o.MatchAndRemove("", "ls-1", testutil.At("10:00"))

	assert.False(t, ok)
	assert.Equal(t, 1, o.Len())
}
