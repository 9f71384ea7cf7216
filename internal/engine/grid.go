package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// SlotRef addresses one cell of the weekly grid by day and slot index,
// avoiding string "day-timeslot" composite keys.
type SlotRef struct {
	Day  int
	Slot int
}

type slotTime struct {
	start int // minutes since midnight
	end   int
}

type breakWindow struct {
	day   string // "All" or a specific working day
	start int
	end   int
	label string
}

// timeGrid holds the parsed weekly structure: working days, chronologically
// ordered slots, break windows and half-days. Immutable for a generation run.
type timeGrid struct {
	days     []string
	slots    []string
	times    []slotTime
	breaks   []breakWindow
	halfDays map[string]bool
	cutoff   int // half-day cutoff in minutes since midnight
}

func newTimeGrid(input Input, cutoff int) (*timeGrid, error) {
	grid := &timeGrid{
		days:     input.WorkingDays,
		slots:    input.TimeSlots,
		times:    make([]slotTime, 0, len(input.TimeSlots)),
		breaks:   make([]breakWindow, 0, len(input.Breaks)),
		halfDays: make(map[string]bool, len(input.HalfDays)),
		cutoff:   cutoff,
	}

	for _, slot := range input.TimeSlots {
		parsed, err := parseSlotRange(slot)
		if err != nil {
			return nil, err
		}
		grid.times = append(grid.times, parsed)
	}

	for _, br := range input.Breaks {
		start, err := parseClock(br.StartTime)
		if err != nil {
			return nil, fmt.Errorf("break %q: %w", br.Label, err)
		}
		end, err := parseClock(br.EndTime)
		if err != nil {
			return nil, fmt.Errorf("break %q: %w", br.Label, err)
		}
		grid.breaks = append(grid.breaks, breakWindow{day: br.Day, start: start, end: end, label: br.Label})
	}

	for _, day := range input.HalfDays {
		grid.halfDays[day] = true
	}

	return grid, nil
}

func (grid *timeGrid) dayIndex(name string) int {
	for i, day := range grid.days {
		if day == name {
			return i
		}
	}
	return -1
}

func (grid *timeGrid) slotIndex(slot string) int {
	for i, candidate := range grid.slots {
		if candidate == slot {
			return i
		}
	}
	return -1
}

// adjacent reports whether slot b starts exactly when slot a ends. List
// adjacency is not enough: a window must not silently span a break.
func (grid *timeGrid) adjacent(a, b int) bool {
	return grid.times[a].end == grid.times[b].start
}

func parseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock value %q: expected HH:MM", value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q: %w", value, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q: %w", value, err)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock value %q out of range", value)
	}

	return hours*60 + minutes, nil
}

func parseSlotRange(slot string) (slotTime, error) {
	parts := strings.Split(slot, "-")
	if len(parts) != 2 {
		return slotTime{}, fmt.Errorf("malformed time slot %q: expected HH:MM-HH:MM", slot)
	}

	start, err := parseClock(parts[0])
	if err != nil {
		return slotTime{}, fmt.Errorf("time slot %q: %w", slot, err)
	}
	end, err := parseClock(parts[1])
	if err != nil {
		return slotTime{}, fmt.Errorf("time slot %q: %w", slot, err)
	}

	if end <= start {
		return slotTime{}, fmt.Errorf("time slot %q must end after it starts", slot)
	}

	return slotTime{start: start, end: end}, nil
}
