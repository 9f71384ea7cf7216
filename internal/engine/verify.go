package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// verifyResult re-checks a produced schedule against the placement invariants
// from scratch, trusting nothing the generation run recorded except the
// violation list (an over-cap workload is legal only when reported).
func verifyResult(result *Result, input Input, options Options) bool {
	cutoff, err := parseClock(options.HalfDayCutoff)
	if err != nil {
		return false
	}
	grid, err := newTimeGrid(input, cutoff)
	if err != nil {
		return false
	}

	subjects := make(map[string]Subject, len(input.Subjects))
	for _, subject := range input.Subjects {
		subjects[subject.ID] = subject
	}

	checker := &availabilityChecker{grid: grid, counseling: make(map[string]map[SlotRef]bool)}

	if !validRefs(result, grid) {
		return false
	}
	if !noTeacherClashes(result) {
		return false
	}
	if !labsContiguous(result, grid, options.LabBlockSize) {
		return false
	}
	if !workloadsWithinCap(result, input) {
		return false
	}
	if !theoryUnclustered(result, subjects) {
		return false
	}
	if !outsideBreaks(result, checker) {
		return false
	}
	if !respectsHalfDays(result, grid) {
		return false
	}
	return basketsAligned(result, input, subjects)
}

// validRefs rejects any entry addressed outside the grid.
func validRefs(result *Result, grid *timeGrid) bool {
	for _, schedule := range result.Schedule {
		for ref := range schedule {
			if ref.Day < 0 || ref.Day >= len(grid.days) {
				return false
			}
			if ref.Slot < 0 || ref.Slot >= len(grid.slots) {
				return false
			}
		}
	}
	return true
}

// noTeacherClashes checks that a teacher appearing in several sections at the
// same slot-instant is always teaching the same shared session: identical
// subject, type and room. Basket hours and counseling reservations render as
// one session across sections; anything else is a double-booking.
func noTeacherClashes(result *Result) bool {
	type slotKey struct {
		teacherID string
		ref       SlotRef
	}
	seen := make(map[slotKey]*Entry)

	for _, schedule := range result.Schedule {
		for ref, entry := range schedule {
			key := slotKey{teacherID: entry.TeacherID, ref: ref}
			previous, ok := seen[key]
			if !ok {
				seen[key] = entry
				continue
			}
			if previous.SubjectID != entry.SubjectID || previous.Type != entry.Type || previous.Room != entry.Room {
				return false
			}
		}
	}
	return true
}

// labsContiguous checks that lab hours land in full blocks: per section and
// day, exactly one lab subject, exactly blockSize slots, each pair of
// consecutive slots adjacent by literal time boundaries.
func labsContiguous(result *Result, grid *timeGrid, blockSize int) bool {
	for _, schedule := range result.Schedule {
		type dayLabs struct {
			subjectID string
			slots     []int
		}
		byDay := make(map[int]*dayLabs)

		for ref, entry := range schedule {
			if entry.Type != SessionLab {
				continue
			}
			labs, ok := byDay[ref.Day]
			if !ok {
				byDay[ref.Day] = &dayLabs{subjectID: entry.SubjectID, slots: []int{ref.Slot}}
				continue
			}
			if labs.subjectID != entry.SubjectID {
				return false
			}
			labs.slots = append(labs.slots, ref.Slot)
		}

		for _, labs := range byDay {
			if len(labs.slots) != blockSize {
				return false
			}
			slices.Sort(labs.slots)
			for i := 1; i < len(labs.slots); i++ {
				if !grid.adjacent(labs.slots[i-1], labs.slots[i]) {
					return false
				}
			}
		}
	}
	return true
}

// workloadsWithinCap recomputes each teacher's workload as the number of
// distinct slot-instants they appear at, counting a shared session once. An
// overrun passes only when the report names it.
func workloadsWithinCap(result *Result, input Input) bool {
	occupied := make(map[string]map[SlotRef]bool, len(input.Teachers))
	for _, schedule := range result.Schedule {
		for ref, entry := range schedule {
			if occupied[entry.TeacherID] == nil {
				occupied[entry.TeacherID] = make(map[SlotRef]bool)
			}
			occupied[entry.TeacherID][ref] = true
		}
	}

	for _, teacher := range input.Teachers {
		if len(occupied[teacher.ID]) <= teacher.MaxLoad {
			continue
		}
		reported := lo.SomeBy(result.Report.Violations, func(violation string) bool {
			return strings.Contains(violation, teacher.Name) && strings.Contains(violation, "exceeds max load")
		})
		if !reported {
			return false
		}
	}
	return true
}

// theoryUnclustered checks the anti-clustering rule: a non-continuous
// subject's theory hours never land twice on the same day for a section.
func theoryUnclustered(result *Result, subjects map[string]Subject) bool {
	for _, schedule := range result.Schedule {
		count := make(map[string]int)
		for ref, entry := range schedule {
			if entry.Type != SessionTheory {
				continue
			}
			if subject, ok := subjects[entry.SubjectID]; ok && subject.IsContinuous {
				continue
			}
			key := fmt.Sprintf("%d/%s", ref.Day, entry.SubjectID)
			count[key]++
			if count[key] > 1 {
				return false
			}
		}
	}
	return true
}

// outsideBreaks checks that no teaching session occupies a break slot.
// Counseling reservations are exempt: they sit wherever configured.
func outsideBreaks(result *Result, checker *availabilityChecker) bool {
	for _, schedule := range result.Schedule {
		for ref, entry := range schedule {
			if entry.Type == SessionCounseling {
				continue
			}
			if checker.isBreakTime(ref.Day, ref.Slot) {
				return false
			}
		}
	}
	return true
}

// respectsHalfDays checks that no teaching session starts at or after the
// cutoff on a half-day.
func respectsHalfDays(result *Result, grid *timeGrid) bool {
	for _, schedule := range result.Schedule {
		for ref, entry := range schedule {
			if entry.Type == SessionCounseling {
				continue
			}
			if grid.halfDays[grid.days[ref.Day]] && grid.times[ref.Slot].start >= grid.cutoff {
				return false
			}
		}
	}
	return true
}

// basketsAligned checks that every participating section carries a basket
// subject at the identical slot-instants with the same teacher and room.
func basketsAligned(result *Result, input Input, subjects map[string]Subject) bool {
	for _, subject := range input.Subjects {
		if !subject.IsBasket {
			continue
		}

		participants := lo.Filter(input.Sections, func(section Section, _ int) bool {
			return lo.Contains(section.Subjects, subject.ID)
		})
		if len(participants) < 2 {
			continue
		}

		var reference map[SlotRef]Entry
		for _, section := range participants {
			placements := make(map[SlotRef]Entry)
			for ref, entry := range result.Schedule[section.ID] {
				if entry.SubjectID == subject.ID && entry.Type == SessionTheory {
					placements[ref] = *entry
				}
			}

			if reference == nil {
				reference = placements
				continue
			}
			if len(placements) != len(reference) {
				return false
			}
			for ref, entry := range placements {
				expected, ok := reference[ref]
				if !ok || expected.TeacherID != entry.TeacherID || expected.Room != entry.Room {
					return false
				}
			}
		}
	}
	return true
}
