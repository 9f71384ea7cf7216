package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testInput returns a small two-section configuration on the stock grid with
// Saturday as a half-day and one counseling reservation.
func testInput() Input {
	days, slots, breaks := DefaultGrid()
	return Input{
		Sections: []Section{
			{ID: "CSE-A", Subjects: []string{"MATH", "PHY", "ELEC"}, Room: "Room-101"},
			{ID: "CSE-B", Subjects: []string{"MATH", "PHY", "ELEC"}, Room: "Room-102"},
		},
		Subjects: []Subject{
			{ID: "MATH", Name: "Mathematics", TheoryHours: 4, PreferEarly: true},
			{ID: "PHY", Name: "Physics", TheoryHours: 3, LabHours: 2},
			{ID: "ELEC", Name: "Open Elective", TheoryHours: 2, IsBasket: true},
		},
		Teachers: []Teacher{
			{ID: "T1", Name: "Dr. Rao", MaxLoad: 12},
			{ID: "T2", Name: "Prof. Iyer", MaxLoad: 10},
		},
		Mappings: []Mapping{
			{TeacherID: "T1", SubjectID: "MATH", SectionID: MappingAllSections},
			{TeacherID: "T2", SubjectID: "PHY", SectionID: MappingAllSections},
			{TeacherID: "T2", SubjectID: "ELEC", SectionID: MappingAllSections},
		},
		Classrooms:  []string{"Room-201", "Room-202"},
		Labs:        []string{"Lab-1", "Lab-2"},
		WorkingDays: days,
		TimeSlots:   slots,
		Breaks:      breaks,
		HalfDays:    []string{"Saturday"},
		CounselingPeriods: []CounselingPeriod{
			{TeacherID: "T1", Day: "Wednesday", TimeSlot: slots[7]},
		},
	}
}

func testGrid(t *testing.T, input Input) *timeGrid {
	cutoff, err := parseClock("13:30")
	assert.NoError(t, err)

	grid, err := newTimeGrid(input, cutoff)
	assert.NoError(t, err)

	return grid
}

// contiguousInput returns a single-day, single-section grid of six
// gapless slots with no breaks, for adjacency and compactness tests.
func contiguousInput() Input {
	return Input{
		Sections: []Section{{ID: "CSE-A", Subjects: []string{"MATH"}}},
		Subjects: []Subject{{ID: "MATH", Name: "Mathematics", TheoryHours: 2}},
		Teachers: []Teacher{{ID: "T1", Name: "Dr. Rao", MaxLoad: 12}},
		Mappings: []Mapping{{TeacherID: "T1", SubjectID: "MATH", SectionID: MappingAllSections}},
		WorkingDays: []string{"Monday"},
		TimeSlots: []string{
			"09:00-10:00",
			"10:00-11:00",
			"11:00-12:00",
			"12:00-13:00",
			"13:00-14:00",
			"14:00-15:00",
		},
	}
}

func newTestDistributor(t *testing.T, input Input) (*scheduleState, *hourDistributor) {
	grid := testGrid(t, input)
	state := newScheduleState(grid, input.Sections, input.Teachers)
	checker := newAvailabilityChecker(grid, state, input.CounselingPeriods)
	finder := newBlockFinder(grid, checker, state, 2, 2)

	distributor := &hourDistributor{
		grid:       grid,
		checker:    checker,
		finder:     finder,
		state:      state,
		classrooms: input.Classrooms,
		labs:       input.Labs,
		rng:        rand.New(rand.NewSource(7)),
		early:      2,
		labBlock:   2,
		logf:       func(string, ...any) {},
	}

	return state, distributor
}
