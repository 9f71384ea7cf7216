package engine

import (
	"sort"

	"github.com/samber/lo"
)

// simultaneousDistributor places basket subjects: every participating section
// receives the subject at the identical (day, slot) with the same teacher and
// a room free across all of them.
type simultaneousDistributor struct {
	grid        *timeGrid
	checker     *availabilityChecker
	finder      *blockFinder
	state       *scheduleState
	distributor *hourDistributor
	classrooms  []string
	logf        func(format string, args ...any)
}

// distribute places the subject's theory hours one shared slot at a time.
// Returns the number of shared hours actually scheduled.
func (simultaneous *simultaneousDistributor) distribute(subject Subject, teacher Teacher, sections []Section) int {
	scheduled := 0

	for hour := range subject.TheoryHours {
		if simultaneous.state.workloadOf(teacher.ID)+1 > teacher.MaxLoad {
			simultaneous.logf("teacher %s cannot take another shared hour of %s without exceeding the %d-hour cap", teacher.Name, subject.Name, teacher.MaxLoad)
			break
		}

		ref, room, ok := simultaneous.sharedSlot(subject, teacher, sections)
		if !ok {
			simultaneous.logf("no simultaneous free slot found for hour %d of %s", hour+1, subject.Name)
			break
		}

		for _, section := range sections {
			simultaneous.state.place(section.ID, ref, &Entry{
				SubjectID:   subject.ID,
				SubjectName: subject.Name,
				TeacherID:   teacher.ID,
				TeacherName: teacher.Name,
				Type:        SessionTheory,
				Room:        room,
			})
		}
		simultaneous.state.markTeacher(teacher.ID, ref)
		simultaneous.state.addWorkload(teacher.ID, 1)
		scheduled++
	}

	return scheduled
}

// sharedSlot searches for a slot feasible for every participating section at
// once, early slots first when the subject prefers them, then every available
// slot ranked by the summed compactness across sections. A slot without a
// room free in all sections is skipped.
func (simultaneous *simultaneousDistributor) sharedSlot(subject Subject, teacher Teacher, sections []Section) (SlotRef, string, bool) {
	feasible := func(ref SlotRef) bool {
		return lo.EveryBy(sections, func(section Section) bool {
			return simultaneous.checker.canPlaceSubject(ref, section.ID, teacher.ID, subject.ID)
		})
	}

	days := simultaneous.distributor.shuffledDays()

	if subject.PreferEarly {
		for _, day := range days {
			available := simultaneous.checker.availableSlots(day, false)
			limit := min(simultaneous.distributor.early, len(available))
			for _, slot := range available[:limit] {
				ref := SlotRef{Day: day, Slot: slot}
				if !feasible(ref) {
					continue
				}
				if room, ok := simultaneous.freeRoom(ref); ok {
					return ref, room, true
				}
			}
		}
	}

	for _, day := range days {
		available := simultaneous.checker.availableSlots(day, false)
		sort.SliceStable(available, func(i, j int) bool {
			return simultaneous.jointCompactness(sections, day, available[i]) > simultaneous.jointCompactness(sections, day, available[j])
		})
		for _, slot := range available {
			ref := SlotRef{Day: day, Slot: slot}
			if !feasible(ref) {
				continue
			}
			if room, ok := simultaneous.freeRoom(ref); ok {
				return ref, room, true
			}
		}
	}

	return SlotRef{}, "", false
}

// jointCompactness sums the compactness score over all participating
// sections: a slot good for one section but bad for others stays viable,
// only ranked lower.
func (simultaneous *simultaneousDistributor) jointCompactness(sections []Section, day, slot int) int {
	score := 0
	for _, section := range sections {
		score += simultaneous.finder.compactness(section.ID, day, slot)
	}
	return score
}

// freeRoom picks a classroom not in use by any section at the slot-instant.
func (simultaneous *simultaneousDistributor) freeRoom(ref SlotRef) (string, bool) {
	if len(simultaneous.classrooms) == 0 {
		return "Room-TBD", true
	}

	inUse := simultaneous.state.roomsInUse(ref)
	for _, room := range simultaneous.classrooms {
		if !inUse[room] {
			return room, true
		}
	}
	return "", false
}
