package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	t.Run("valid values", func(t *testing.T) {
		// Act
		morning, errMorning := parseClock("09:00")
		cutoff, errCutoff := parseClock("13:30")

		// Assert
		assert.NoError(t, errMorning)
		assert.Equal(t, 9*60, morning)
		assert.NoError(t, errCutoff)
		assert.Equal(t, 13*60+30, cutoff)
	})

	t.Run("malformed value", func(t *testing.T) {
		// Act
		_, err := parseClock("0930")

		// Assert
		assert.Error(t, err)
	})

	t.Run("out of range", func(t *testing.T) {
		// Act
		_, err := parseClock("25:00")

		// Assert
		assert.Error(t, err)
	})
}

func TestParseSlotRange(t *testing.T) {
	t.Run("valid slot", func(t *testing.T) {
		// Act
		parsed, err := parseSlotRange("11:00-11:30")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, slotTime{start: 660, end: 690}, parsed)
	})

	t.Run("end before start", func(t *testing.T) {
		// Act
		_, err := parseSlotRange("11:30-11:00")

		// Assert
		assert.Error(t, err)
	})

	t.Run("missing separator", func(t *testing.T) {
		// Act
		_, err := parseSlotRange("11:00")

		// Assert
		assert.Error(t, err)
	})
}

func TestNewTimeGridRejectsMalformedInput(t *testing.T) {
	t.Run("malformed time slot", func(t *testing.T) {
		// Arrange
		input := testInput()
		input.TimeSlots = append(input.TimeSlots, "evening")

		// Act
		_, err := newTimeGrid(input, 810)

		// Assert
		assert.Error(t, err)
	})

	t.Run("malformed break", func(t *testing.T) {
		// Arrange
		input := testInput()
		input.Breaks = append(input.Breaks, Break{Day: "All", StartTime: "noon", EndTime: "13:00", Label: "Bad"})

		// Act
		_, err := newTimeGrid(input, 810)

		// Assert
		assert.Error(t, err)
	})
}

func TestAdjacency(t *testing.T) {
	// Arrange
	grid := testGrid(t, testInput())

	// Assert: adjacency follows literal time boundaries, not list positions.
	assert.True(t, grid.adjacent(0, 1))
	assert.True(t, grid.adjacent(3, 4))
	assert.False(t, grid.adjacent(1, 3)) // gap across the short break
	assert.False(t, grid.adjacent(4, 6)) // gap across the lunch break
}

func TestDayAndSlotIndex(t *testing.T) {
	// Arrange
	grid := testGrid(t, testInput())

	// Assert
	assert.Equal(t, 2, grid.dayIndex("Wednesday"))
	assert.Equal(t, -1, grid.dayIndex("Sunday"))
	assert.Equal(t, 0, grid.slotIndex("09:00-10:00"))
	assert.Equal(t, -1, grid.slotIndex("17:00-18:00"))
}
