package engine

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputFromJSON(t *testing.T) {
	// Arrange
	file := path.Join(t.TempDir(), "input.json")
	payload := `{
		"sections": [{"id": "CSE-A", "subjects": ["MATH"], "room": "Room-101"}],
		"subjects": [{"id": "MATH", "name": "Mathematics", "theoryHours": 4, "isBasketCourse": true, "preferEarly": true}],
		"teachers": [{"id": "T1", "name": "Dr. Rao", "maxLoad": 12}],
		"mappings": [{"teacherId": "T1", "subjectId": "MATH", "sectionId": "All"}],
		"workingDays": ["Monday"],
		"timeSlots": ["09:00-10:00"],
		"breaks": [{"day": "All", "startTime": "11:00", "endTime": "11:30", "label": "Short Break"}],
		"halfDays": ["Saturday"],
		"counselingPeriods": [{"teacherId": "T1", "day": "Monday", "timeSlot": "09:00-10:00"}]
	}`
	assert.NoError(t, os.WriteFile(file, []byte(payload), 0666))

	// Act
	input, err := InputFromJSON(file)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "CSE-A", input.Sections[0].ID)
	assert.Equal(t, "Room-101", input.Sections[0].Room)
	assert.True(t, input.Subjects[0].IsBasket)
	assert.True(t, input.Subjects[0].PreferEarly)
	assert.Equal(t, 12, input.Teachers[0].MaxLoad)
	assert.Equal(t, MappingAllSections, input.Mappings[0].SectionID)
	assert.Equal(t, "Short Break", input.Breaks[0].Label)
	assert.Equal(t, "09:00-10:00", input.CounselingPeriods[0].TimeSlot)
}

func TestInputFromJSONErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		// Act
		_, err := InputFromJSON(path.Join(t.TempDir(), "absent.json"))

		// Assert
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		// Arrange
		file := path.Join(t.TempDir(), "broken.json")
		assert.NoError(t, os.WriteFile(file, []byte("{"), 0666))

		// Act
		_, err := InputFromJSON(file)

		// Assert
		assert.Error(t, err)
	})
}

func TestDefaultGrid(t *testing.T) {
	// Act
	days, slots, breaks := DefaultGrid()

	// Assert
	assert.Len(t, days, 6)
	assert.Len(t, slots, 8)
	assert.Len(t, breaks, 2)
	for _, slot := range slots {
		_, err := parseSlotRange(slot)
		assert.NoError(t, err)
	}
}
