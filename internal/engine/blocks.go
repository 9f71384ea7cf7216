package engine

import (
	"sort"
)

// blockFinder locates runs of contiguous free slots for labs and continuous
// theory blocks. Candidates are tried chronologically, never randomly: a block
// must read as one uninterrupted visual run.
type blockFinder struct {
	grid    *timeGrid
	checker *availabilityChecker
	state   *scheduleState
	early   int // candidate start positions for the prefer-early restriction
	bonus   int // compactness score per adjacent placed entry
}

func newBlockFinder(grid *timeGrid, checker *availabilityChecker, state *scheduleState, early, bonus int) *blockFinder {
	return &blockFinder{grid: grid, checker: checker, state: state, early: early, bonus: bonus}
}

// find returns the first fully free, time-contiguous window of size slots on
// the day. With earlyOnly the candidate start positions are limited to the
// first available slots of the day.
func (finder *blockFinder) find(day, size int, sectionID, teacherID string, earlyOnly bool) ([]SlotRef, bool) {
	available := finder.checker.availableSlots(day, false)

	maxStart := len(available) - size
	if earlyOnly && maxStart > finder.early-1 {
		maxStart = finder.early - 1
	}

	for start := 0; start <= maxStart; start++ {
		window := available[start : start+size]
		if finder.windowFits(day, window, sectionID, teacherID) {
			return windowRefs(day, window), true
		}
	}

	return nil, false
}

// findCompact ranks every valid window by its proximity to already placed
// entries for the section on that day and returns the best one. Used on the
// fallback pass to reduce fragmentation.
func (finder *blockFinder) findCompact(day, size int, sectionID, teacherID string) ([]SlotRef, bool) {
	available := finder.checker.availableSlots(day, false)

	type scored struct {
		window []int
		score  int
	}
	candidates := make([]scored, 0)

	for start := 0; start+size <= len(available); start++ {
		window := available[start : start+size]
		if !finder.windowFits(day, window, sectionID, teacherID) {
			continue
		}

		score := 0
		for _, slot := range window {
			score += finder.compactness(sectionID, day, slot)
		}
		candidates = append(candidates, scored{window: window, score: score})
	}

	if len(candidates) == 0 {
		return nil, false
	}

	// Stable sort keeps the chronological order among equally scored windows.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	return windowRefs(day, candidates[0].window), true
}

// windowFits verifies true time-adjacency (no gap across an excluded break
// slot) and that every slot is free for both the section and the teacher.
func (finder *blockFinder) windowFits(day int, window []int, sectionID, teacherID string) bool {
	for i := 0; i < len(window)-1; i++ {
		if !finder.grid.adjacent(window[i], window[i+1]) {
			return false
		}
	}

	for _, slot := range window {
		ref := SlotRef{Day: day, Slot: slot}
		if finder.state.entry(sectionID, ref) != nil {
			return false
		}
		if finder.state.teacherBusy(teacherID, ref) {
			return false
		}
		if finder.checker.isCounselingSlot(teacherID, ref) {
			return false
		}
	}

	return true
}

// compactness scores a slot by the placed entries it is time-adjacent to for
// the section on that day.
func (finder *blockFinder) compactness(sectionID string, day, slot int) int {
	score := 0
	for _, occupied := range finder.state.occupiedSlots(sectionID, day) {
		if occupied == slot {
			continue
		}
		if finder.grid.adjacent(occupied, slot) || finder.grid.adjacent(slot, occupied) {
			score += finder.bonus
		}
	}
	return score
}

func windowRefs(day int, window []int) []SlotRef {
	refs := make([]SlotRef, 0, len(window))
	for _, slot := range window {
		refs = append(refs, SlotRef{Day: day, Slot: slot})
	}
	return refs
}
