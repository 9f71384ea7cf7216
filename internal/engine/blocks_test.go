package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestFinder(t *testing.T, input Input) (*scheduleState, *blockFinder) {
	grid := testGrid(t, input)
	state := newScheduleState(grid, input.Sections, input.Teachers)
	checker := newAvailabilityChecker(grid, state, input.CounselingPeriods)
	return state, newBlockFinder(grid, checker, state, 2, 2)
}

func TestFindReturnsContiguousWindow(t *testing.T) {
	// Arrange
	_, finder := newTestFinder(t, testInput())

	// Act
	refs, ok := finder.find(0, 2, "CSE-A", "T1", false)

	// Assert
	assert.True(t, ok)
	assert.Equal(t, []SlotRef{{Day: 0, Slot: 0}, {Day: 0, Slot: 1}}, refs)
}

func TestFindNeverSpansBreaks(t *testing.T) {
	// Arrange: slots 0 and 1 are taken, so the naive next window would be
	// [1, 3] across the short break.
	state, finder := newTestFinder(t, testInput())
	state.place("CSE-A", SlotRef{Day: 0, Slot: 0}, &Entry{SubjectID: "PHY", TeacherID: "T2", Type: SessionTheory})
	state.place("CSE-A", SlotRef{Day: 0, Slot: 1}, &Entry{SubjectID: "PHY", TeacherID: "T2", Type: SessionTheory})

	// Act
	refs, ok := finder.find(0, 2, "CSE-A", "T1", false)

	// Assert
	assert.True(t, ok)
	assert.Equal(t, []SlotRef{{Day: 0, Slot: 3}, {Day: 0, Slot: 4}}, refs)
}

func TestFindEarlyOnly(t *testing.T) {
	// Arrange: with the morning pair taken there is no early window left.
	state, finder := newTestFinder(t, testInput())
	state.place("CSE-A", SlotRef{Day: 0, Slot: 0}, &Entry{SubjectID: "PHY", TeacherID: "T2", Type: SessionTheory})

	// Act
	_, ok := finder.find(0, 2, "CSE-A", "T1", true)

	// Assert
	assert.False(t, ok)
}

func TestFindSkipsBusyTeacher(t *testing.T) {
	// Arrange: the teacher is engaged in another section at slot 0.
	state, finder := newTestFinder(t, testInput())
	state.place("CSE-B", SlotRef{Day: 0, Slot: 0}, &Entry{SubjectID: "MATH", TeacherID: "T1", Type: SessionTheory})
	state.markTeacher("T1", SlotRef{Day: 0, Slot: 0})

	// Act
	refs, ok := finder.find(0, 2, "CSE-A", "T1", false)

	// Assert
	assert.True(t, ok)
	assert.Equal(t, []SlotRef{{Day: 0, Slot: 3}, {Day: 0, Slot: 4}}, refs)
}

func TestFindCompactFavorsAdjacency(t *testing.T) {
	// Arrange: slot 2 of the gapless grid is occupied; windows touching it
	// outrank equally valid windows further away.
	state, finder := newTestFinder(t, contiguousInput())
	state.place("CSE-A", SlotRef{Day: 0, Slot: 2}, &Entry{SubjectID: "MATH", TeacherID: "T1", Type: SessionTheory})

	// Act
	refs, ok := finder.findCompact(0, 2, "CSE-A", "T1")

	// Assert: [0,1] and [3,4] both score the adjacency bonus; the stable sort
	// keeps the chronological one first.
	assert.True(t, ok)
	assert.Equal(t, []SlotRef{{Day: 0, Slot: 0}, {Day: 0, Slot: 1}}, refs)
}

func TestCompactnessScore(t *testing.T) {
	// Arrange
	state, finder := newTestFinder(t, contiguousInput())
	state.place("CSE-A", SlotRef{Day: 0, Slot: 2}, &Entry{SubjectID: "MATH", TeacherID: "T1", Type: SessionTheory})

	// Assert
	assert.Equal(t, 2, finder.compactness("CSE-A", 0, 1))
	assert.Equal(t, 2, finder.compactness("CSE-A", 0, 3))
	assert.Equal(t, 0, finder.compactness("CSE-A", 0, 5))
}
