package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func emptyResult(input Input) *Result {
	schedule := make(map[string]SectionSchedule, len(input.Sections))
	for _, section := range input.Sections {
		schedule[section.ID] = make(SectionSchedule)
	}
	return &Result{Schedule: schedule}
}

func TestVerifyRejectsBrokenLabBlock(t *testing.T) {
	// Arrange: two lab hours separated by the short break are not contiguous.
	input := testInput()
	result := emptyResult(input)
	lab := Entry{SubjectID: "PHY", SubjectName: "Physics", TeacherID: "T2", Type: SessionLab, Room: "Lab-1"}
	first, second := lab, lab
	result.Schedule["CSE-A"][SlotRef{Day: 0, Slot: 1}] = &first
	result.Schedule["CSE-A"][SlotRef{Day: 0, Slot: 3}] = &second

	// Act
	ok := verifyResult(result, input, DefaultOptions())

	// Assert
	assert.False(t, ok)
}

func TestVerifyRejectsLoneLabHour(t *testing.T) {
	// Arrange
	input := testInput()
	result := emptyResult(input)
	result.Schedule["CSE-A"][SlotRef{Day: 0, Slot: 0}] = &Entry{SubjectID: "PHY", TeacherID: "T2", Type: SessionLab, Room: "Lab-1"}

	// Act
	ok := verifyResult(result, input, DefaultOptions())

	// Assert
	assert.False(t, ok)
}

func TestVerifyRejectsSessionInBreak(t *testing.T) {
	// Arrange: slot 2 sits inside the short break window.
	input := testInput()
	result := emptyResult(input)
	result.Schedule["CSE-A"][SlotRef{Day: 0, Slot: 2}] = &Entry{SubjectID: "MATH", TeacherID: "T1", Type: SessionTheory}

	// Act
	ok := verifyResult(result, input, DefaultOptions())

	// Assert
	assert.False(t, ok)
}

func TestVerifyRejectsHalfDayAfternoon(t *testing.T) {
	// Arrange: Saturday is a half-day; slot 6 starts after the cutoff.
	input := testInput()
	result := emptyResult(input)
	result.Schedule["CSE-A"][SlotRef{Day: 5, Slot: 6}] = &Entry{SubjectID: "MATH", TeacherID: "T1", Type: SessionTheory}

	// Act
	ok := verifyResult(result, input, DefaultOptions())

	// Assert
	assert.False(t, ok)
}

func TestVerifyRejectsClusteredTheory(t *testing.T) {
	// Arrange: a non-continuous subject twice on one day.
	input := testInput()
	result := emptyResult(input)
	result.Schedule["CSE-A"][SlotRef{Day: 0, Slot: 0}] = &Entry{SubjectID: "MATH", TeacherID: "T1", Type: SessionTheory}
	result.Schedule["CSE-A"][SlotRef{Day: 0, Slot: 3}] = &Entry{SubjectID: "MATH", TeacherID: "T1", Type: SessionTheory}

	// Act
	ok := verifyResult(result, input, DefaultOptions())

	// Assert
	assert.False(t, ok)
}

func TestVerifyRejectsUnreportedOverload(t *testing.T) {
	// Arrange: three hours against a 2-hour cap with no violation on record.
	input := testInput()
	input.Teachers[0].MaxLoad = 2
	result := emptyResult(input)
	for day := range 3 {
		result.Schedule["CSE-A"][SlotRef{Day: day, Slot: 0}] = &Entry{SubjectID: "MATH", TeacherID: "T1", Type: SessionTheory}
	}

	// Act
	ok := verifyResult(result, input, DefaultOptions())

	// Assert
	assert.False(t, ok)
}

func TestVerifyAcceptsReportedOverload(t *testing.T) {
	// Arrange
	input := testInput()
	input.Teachers[0].MaxLoad = 2
	result := emptyResult(input)
	for day := range 3 {
		result.Schedule["CSE-A"][SlotRef{Day: day, Slot: 0}] = &Entry{SubjectID: "MATH", TeacherID: "T1", Type: SessionTheory}
	}
	result.Report.Violations = []string{"Dr. Rao exceeds max load: 3/2 hours"}

	// Act
	ok := verifyResult(result, input, DefaultOptions())

	// Assert
	assert.True(t, ok)
}

func TestVerifyRejectsMisalignedBasket(t *testing.T) {
	// Arrange: the elective lands at different instants in the two sections.
	input := testInput()
	result := emptyResult(input)
	result.Schedule["CSE-A"][SlotRef{Day: 0, Slot: 0}] = &Entry{SubjectID: "ELEC", TeacherID: "T2", Type: SessionTheory, Room: "Room-201"}
	result.Schedule["CSE-B"][SlotRef{Day: 0, Slot: 1}] = &Entry{SubjectID: "ELEC", TeacherID: "T2", Type: SessionTheory, Room: "Room-201"}

	// Act
	ok := verifyResult(result, input, DefaultOptions())

	// Assert
	assert.False(t, ok)
}

func TestVerifyAllowsSharedCounseling(t *testing.T) {
	// Arrange: the same reservation rendered in both sections is one session,
	// not a double-booking.
	input := testInput()
	ref := SlotRef{Day: 2, Slot: 7}
	result := emptyResult(input)
	counseling := Entry{SubjectID: "COUNSELING", SubjectName: "Counseling", TeacherID: "T1", Type: SessionCounseling, Room: "Counseling Room"}
	first, second := counseling, counseling
	result.Schedule["CSE-A"][ref] = &first
	result.Schedule["CSE-B"][ref] = &second

	// Act
	ok := verifyResult(result, input, DefaultOptions())

	// Assert
	assert.True(t, ok)
}
