package engine

import "slices"

type SessionType string

const (
	SessionTheory     SessionType = "Theory"
	SessionLab        SessionType = "Lab"
	SessionCounseling SessionType = "Counseling"
)

// Entry is one placed session in a section's weekly schedule.
type Entry struct {
	SubjectID   string      `json:"subjectId"`
	SubjectName string      `json:"subjectName"`
	TeacherID   string      `json:"teacherId"`
	TeacherName string      `json:"teacherName"`
	Type        SessionType `json:"type"`
	Room        string      `json:"room"`
	BlockPart   string      `json:"blockPart,omitempty"` // "i/n" within a contiguous block
}

type SectionSchedule map[SlotRef]*Entry

// scheduleState is the mutable state of one generation run: per-section
// schedules, per-teacher occupancy and running workloads. It is exclusively
// owned by the orchestrator and the distributors it calls.
type scheduleState struct {
	grid         *timeGrid
	sections     map[string]SectionSchedule
	teacherSlots map[string]map[SlotRef]bool
	workload     map[string]int
}

func newScheduleState(grid *timeGrid, sections []Section, teachers []Teacher) *scheduleState {
	state := &scheduleState{
		grid:         grid,
		sections:     make(map[string]SectionSchedule, len(sections)),
		teacherSlots: make(map[string]map[SlotRef]bool, len(teachers)),
		workload:     make(map[string]int, len(teachers)),
	}
	for _, section := range sections {
		state.sections[section.ID] = make(SectionSchedule)
	}
	for _, teacher := range teachers {
		state.teacherSlots[teacher.ID] = make(map[SlotRef]bool)
		state.workload[teacher.ID] = 0
	}
	return state
}

func (state *scheduleState) entry(sectionID string, ref SlotRef) *Entry {
	return state.sections[sectionID][ref]
}

func (state *scheduleState) place(sectionID string, ref SlotRef, entry *Entry) {
	state.sections[sectionID][ref] = entry
}

func (state *scheduleState) teacherBusy(teacherID string, ref SlotRef) bool {
	return state.teacherSlots[teacherID][ref]
}

func (state *scheduleState) markTeacher(teacherID string, ref SlotRef) {
	slots, ok := state.teacherSlots[teacherID]
	if !ok {
		slots = make(map[SlotRef]bool)
		state.teacherSlots[teacherID] = slots
	}
	slots[ref] = true
}

func (state *scheduleState) addWorkload(teacherID string, hours int) {
	state.workload[teacherID] += hours
}

func (state *scheduleState) workloadOf(teacherID string) int {
	return state.workload[teacherID]
}

// subjectOnDay reports whether the subject already has any entry for the
// section on the given day. Used to keep scattered hours from clustering.
func (state *scheduleState) subjectOnDay(sectionID string, day int, subjectID string) bool {
	for ref, entry := range state.sections[sectionID] {
		if ref.Day == day && entry.SubjectID == subjectID {
			return true
		}
	}
	return false
}

func (state *scheduleState) hasLabOnDay(sectionID string, day int) bool {
	for ref, entry := range state.sections[sectionID] {
		if ref.Day == day && entry.Type == SessionLab {
			return true
		}
	}
	return false
}

// occupiedSlots returns the sorted slot indices already filled for the
// section on the given day.
func (state *scheduleState) occupiedSlots(sectionID string, day int) []int {
	occupied := make([]int, 0)
	for ref := range state.sections[sectionID] {
		if ref.Day == day {
			occupied = append(occupied, ref.Slot)
		}
	}
	slices.Sort(occupied)
	return occupied
}

// roomsInUse collects every room occupied by any section at the given
// slot-instant.
func (state *scheduleState) roomsInUse(ref SlotRef) map[string]bool {
	rooms := make(map[string]bool)
	for _, schedule := range state.sections {
		if entry, ok := schedule[ref]; ok && entry.Room != "" {
			rooms[entry.Room] = true
		}
	}
	return rooms
}
