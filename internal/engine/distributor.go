package engine

import (
	"fmt"
	"math/rand"
	"sort"
)

// hourDistributor places one subject's weekly theory or lab hours for a
// single (section, teacher) pair, mutating the shared schedule state.
type hourDistributor struct {
	grid       *timeGrid
	checker    *availabilityChecker
	finder     *blockFinder
	state      *scheduleState
	classrooms []string
	labs       []string
	rng        *rand.Rand
	early      int
	labBlock   int
	logf       func(format string, args ...any)
}

// distributeLabs places the subject's lab hours as fixed contiguous blocks,
// rounding the block count up when the hours are not a multiple of the block
// size. Returns the number of hours actually scheduled.
func (distributor *hourDistributor) distributeLabs(section Section, subject Subject, teacher Teacher) int {
	if subject.LabHours <= 0 {
		return 0
	}

	blockSize := distributor.labBlock
	blocksNeeded := (subject.LabHours + blockSize - 1) / blockSize
	if subject.LabHours%blockSize != 0 {
		distributor.logf("lab hours for %s are not a multiple of %d: rounding up to %d full blocks", subject.Name, blockSize, blocksNeeded)
	}

	scheduled := 0
	days := distributor.shuffledDays()

	for block := range blocksNeeded {
		if distributor.state.workloadOf(teacher.ID)+blockSize > teacher.MaxLoad {
			distributor.logf("teacher %s cannot take another %d-hour lab block for %s without exceeding the %d-hour cap", teacher.Name, blockSize, subject.Name, teacher.MaxLoad)
			break
		}

		placed := false
		for _, day := range days {
			// One lab per day per section, and labs never land on half-days.
			if distributor.checker.isHalfDay(day) || distributor.state.hasLabOnDay(section.ID, day) {
				continue
			}

			refs, ok := distributor.findBlock(day, blockSize, section.ID, teacher.ID, subject.PreferEarly)
			if !ok {
				continue
			}

			room := distributor.labRoom(block)
			for i, ref := range refs {
				distributor.state.place(section.ID, ref, &Entry{
					SubjectID:   subject.ID,
					SubjectName: subject.Name,
					TeacherID:   teacher.ID,
					TeacherName: teacher.Name,
					Type:        SessionLab,
					Room:        room,
					BlockPart:   fmt.Sprintf("%d/%d", i+1, blockSize),
				})
				distributor.state.markTeacher(teacher.ID, ref)
			}
			distributor.state.addWorkload(teacher.ID, blockSize)
			scheduled += blockSize
			placed = true

			distributor.logf("placed %d-hour lab for %s in %s on %s at %s", blockSize, subject.Name, section.ID, distributor.grid.days[day], room)
			break
		}

		if !placed {
			distributor.logf("could not place lab block %d for %s in %s", block+1, subject.Name, section.ID)
		}
	}

	return scheduled
}

// distributeTheory places the subject's theory hours, either as contiguous
// blocks plus a scattered remainder, or fully scattered. Returns the number
// of hours actually scheduled.
func (distributor *hourDistributor) distributeTheory(section Section, subject Subject, teacher Teacher) int {
	if subject.TheoryHours <= 0 {
		return 0
	}

	blockSize := subject.ContinuousBlockSize
	if blockSize < 2 {
		blockSize = 2
	}

	// A continuous subject with fewer hours than one block falls through to
	// the scattered path.
	if !subject.IsContinuous || subject.TheoryHours < blockSize {
		return distributor.placeScattered(section, subject, teacher, subject.TheoryHours)
	}

	blocksNeeded := subject.TheoryHours / blockSize
	remaining := subject.TheoryHours % blockSize
	scheduled := 0
	days := distributor.shuffledDays()

	for block := range blocksNeeded {
		if distributor.state.workloadOf(teacher.ID)+blockSize > teacher.MaxLoad {
			distributor.logf("teacher %s cannot take another %d-hour block of %s without exceeding the %d-hour cap", teacher.Name, blockSize, subject.Name, teacher.MaxLoad)
			break
		}

		placed := false
		for _, day := range days {
			// At most one block of the subject per day per section.
			if distributor.state.subjectOnDay(section.ID, day, subject.ID) {
				continue
			}

			refs, ok := distributor.findBlock(day, blockSize, section.ID, teacher.ID, subject.PreferEarly)
			if !ok {
				continue
			}

			room := distributor.theoryRoom(section)
			for i, ref := range refs {
				distributor.state.place(section.ID, ref, &Entry{
					SubjectID:   subject.ID,
					SubjectName: subject.Name,
					TeacherID:   teacher.ID,
					TeacherName: teacher.Name,
					Type:        SessionTheory,
					Room:        room,
					BlockPart:   fmt.Sprintf("%d/%d", i+1, blockSize),
				})
				distributor.state.markTeacher(teacher.ID, ref)
			}
			distributor.state.addWorkload(teacher.ID, blockSize)
			scheduled += blockSize
			placed = true
			break
		}

		if !placed {
			distributor.logf("could not place %d-hour block %d of %s in %s", blockSize, block+1, subject.Name, section.ID)
		}
	}

	scheduled += distributor.placeScattered(section, subject, teacher, remaining)
	return scheduled
}

// placeScattered distributes single hours across days, at most one hour of
// the subject per day per section.
func (distributor *hourDistributor) placeScattered(section Section, subject Subject, teacher Teacher, hours int) int {
	scheduled := 0

	for range hours {
		if distributor.state.workloadOf(teacher.ID) >= teacher.MaxLoad {
			distributor.logf("teacher %s reached the %d-hour cap while placing %s in %s", teacher.Name, teacher.MaxLoad, subject.Name, section.ID)
			break
		}

		ref, ok := distributor.scatterSlot(section, subject, teacher)
		if !ok {
			break
		}

		distributor.state.place(section.ID, ref, &Entry{
			SubjectID:   subject.ID,
			SubjectName: subject.Name,
			TeacherID:   teacher.ID,
			TeacherName: teacher.Name,
			Type:        SessionTheory,
			Room:        distributor.theoryRoom(section),
		})
		distributor.state.markTeacher(teacher.ID, ref)
		distributor.state.addWorkload(teacher.ID, 1)
		scheduled++
	}

	return scheduled
}

// scatterSlot runs the two-pass search for one scattered hour: the first
// slots of each day when the subject prefers early placement, then every
// available slot ranked by compactness relative to existing entries.
func (distributor *hourDistributor) scatterSlot(section Section, subject Subject, teacher Teacher) (SlotRef, bool) {
	days := distributor.shuffledDays()

	if subject.PreferEarly {
		for _, day := range days {
			available := distributor.checker.availableSlots(day, false)
			limit := min(distributor.early, len(available))
			for _, slot := range available[:limit] {
				ref := SlotRef{Day: day, Slot: slot}
				if distributor.checker.canPlaceSubject(ref, section.ID, teacher.ID, subject.ID) {
					return ref, true
				}
			}
		}
	}

	for _, day := range days {
		available := distributor.checker.availableSlots(day, false)
		sort.SliceStable(available, func(i, j int) bool {
			return distributor.finder.compactness(section.ID, day, available[i]) > distributor.finder.compactness(section.ID, day, available[j])
		})
		for _, slot := range available {
			ref := SlotRef{Day: day, Slot: slot}
			if distributor.checker.canPlaceSubject(ref, section.ID, teacher.ID, subject.ID) {
				return ref, true
			}
		}
	}

	return SlotRef{}, false
}

// findBlock applies the two-pass early-then-any strategy for block placement.
func (distributor *hourDistributor) findBlock(day, size int, sectionID, teacherID string, preferEarly bool) ([]SlotRef, bool) {
	if preferEarly {
		if refs, ok := distributor.finder.find(day, size, sectionID, teacherID, true); ok {
			return refs, true
		}
	}
	return distributor.finder.findCompact(day, size, sectionID, teacherID)
}

func (distributor *hourDistributor) theoryRoom(section Section) string {
	if section.Room != "" {
		return section.Room
	}
	if len(distributor.classrooms) > 0 {
		return distributor.classrooms[distributor.rng.Intn(len(distributor.classrooms))]
	}
	return "Room-TBD"
}

// labRoom rotates through the configured lab-room pool.
func (distributor *hourDistributor) labRoom(block int) string {
	if len(distributor.labs) > 0 {
		return distributor.labs[block%len(distributor.labs)]
	}
	return "Lab-TBD"
}

func (distributor *hourDistributor) shuffledDays() []int {
	days := make([]int, len(distributor.grid.days))
	for i := range days {
		days[i] = i
	}
	distributor.rng.Shuffle(len(days), func(i, j int) {
		days[i], days[j] = days[j], days[i]
	})
	return days
}
