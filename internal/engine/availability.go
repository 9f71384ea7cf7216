package engine

// availabilityChecker answers pure queries over the grid and the current
// partial schedule. It never mutates state.
type availabilityChecker struct {
	grid       *timeGrid
	state      *scheduleState
	counseling map[string]map[SlotRef]bool // teacherID -> reserved refs
}

func newAvailabilityChecker(grid *timeGrid, state *scheduleState, counselingPeriods []CounselingPeriod) *availabilityChecker {
	checker := &availabilityChecker{
		grid:       grid,
		state:      state,
		counseling: make(map[string]map[SlotRef]bool),
	}

	for _, period := range counselingPeriods {
		day := grid.dayIndex(period.Day)
		slot := grid.slotIndex(period.TimeSlot)
		if day < 0 || slot < 0 {
			continue // unknown day or slot, surfaced as an assumption during generation
		}
		if checker.counseling[period.TeacherID] == nil {
			checker.counseling[period.TeacherID] = make(map[SlotRef]bool)
		}
		checker.counseling[period.TeacherID][SlotRef{Day: day, Slot: slot}] = true
	}

	return checker
}

// isBreakTime reports whether the slot's start time falls within a break
// window scoped to "All" or to the given day. The window is [start, end).
func (checker *availabilityChecker) isBreakTime(day, slot int) bool {
	dayName := checker.grid.days[day]
	start := checker.grid.times[slot].start
	for _, br := range checker.grid.breaks {
		if br.day != "All" && br.day != dayName {
			continue
		}
		if start >= br.start && start < br.end {
			return true
		}
	}
	return false
}

func (checker *availabilityChecker) isHalfDay(day int) bool {
	return checker.grid.halfDays[checker.grid.days[day]]
}

func (checker *availabilityChecker) isCounselingSlot(teacherID string, ref SlotRef) bool {
	return checker.counseling[teacherID][ref]
}

// availableSlots returns the usable slot indices of a day in chronological
// order: break slots excluded unless explicitly included, and on half-days
// only slots starting before the cutoff.
func (checker *availabilityChecker) availableSlots(day int, includeBreaks bool) []int {
	available := make([]int, 0, len(checker.grid.slots))
	halfDay := checker.isHalfDay(day)
	for slot := range checker.grid.slots {
		if !includeBreaks && checker.isBreakTime(day, slot) {
			continue
		}
		if halfDay && checker.grid.times[slot].start >= checker.grid.cutoff {
			continue
		}
		available = append(available, slot)
	}
	return available
}

// canPlaceSubject reports whether a single scattered hour of the subject fits
// at the slot: the section must be free, the teacher must be free and not
// reserved for counseling, and the subject must not already appear for the
// section on that day.
func (checker *availabilityChecker) canPlaceSubject(ref SlotRef, sectionID, teacherID, subjectID string) bool {
	if checker.state.entry(sectionID, ref) != nil {
		return false
	}
	if checker.state.teacherBusy(teacherID, ref) {
		return false
	}
	if checker.isCounselingSlot(teacherID, ref) {
		return false
	}
	return !checker.state.subjectOnDay(sectionID, ref.Day, subjectID)
}
