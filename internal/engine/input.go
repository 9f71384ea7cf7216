package engine

import (
	"encoding/json"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Section is a class-section (program + section + semester) receiving one
// weekly schedule.
type Section struct {
	ID       string   `mapstructure:"id" json:"id"`
	Subjects []string `mapstructure:"subjects" json:"subjects"`
	Room     string   `mapstructure:"room" json:"room,omitempty"` // optional home room for theory sessions
}

type Subject struct {
	ID                  string `mapstructure:"id" json:"id"`
	Name                string `mapstructure:"name" json:"name"`
	TheoryHours         int    `mapstructure:"theoryHours" json:"theoryHours"`
	LabHours            int    `mapstructure:"labHours" json:"labHours"`
	IsContinuous        bool   `mapstructure:"isContinuous" json:"isContinuous"`
	ContinuousBlockSize int    `mapstructure:"continuousBlockSize" json:"continuousBlockSize"`
	IsBasket            bool   `mapstructure:"isBasketCourse" json:"isBasketCourse"`
	PreferEarly         bool   `mapstructure:"preferEarly" json:"preferEarly"`
}

type Teacher struct {
	ID      string `mapstructure:"id" json:"id"`
	Name    string `mapstructure:"name" json:"name"`
	MaxLoad int    `mapstructure:"maxLoad" json:"maxLoad"` // weekly hour cap
}

// Mapping qualifies a teacher for a subject. SectionID is either a specific
// section or "All"; section-specific entries take precedence.
type Mapping struct {
	TeacherID string `mapstructure:"teacherId" json:"teacherId"`
	SubjectID string `mapstructure:"subjectId" json:"subjectId"`
	SectionID string `mapstructure:"sectionId" json:"sectionId"`
}

// MappingAllSections marks a mapping as a general qualification.
const MappingAllSections = "All"

type Break struct {
	Day       string `mapstructure:"day" json:"day"` // "All" or a specific working day
	StartTime string `mapstructure:"startTime" json:"startTime"`
	EndTime   string `mapstructure:"endTime" json:"endTime"`
	Label     string `mapstructure:"label" json:"label"`
}

// CounselingPeriod reserves a fixed (teacher, day, slot) ahead of normal
// scheduling.
type CounselingPeriod struct {
	TeacherID string `mapstructure:"teacherId" json:"teacherId"`
	Day       string `mapstructure:"day" json:"day"`
	TimeSlot  string `mapstructure:"timeSlot" json:"timeSlot"`
}

// Input carries everything one generation run consumes. All of it is
// externally supplied and read-only for the duration of the run.
type Input struct {
	Sections          []Section          `mapstructure:"sections" json:"sections"`
	Subjects          []Subject          `mapstructure:"subjects" json:"subjects"`
	Teachers          []Teacher          `mapstructure:"teachers" json:"teachers"`
	Mappings          []Mapping          `mapstructure:"mappings" json:"mappings"`
	Classrooms        []string           `mapstructure:"classrooms" json:"classrooms"`
	Labs              []string           `mapstructure:"labs" json:"labs"`
	WorkingDays       []string           `mapstructure:"workingDays" json:"workingDays"`
	TimeSlots         []string           `mapstructure:"timeSlots" json:"timeSlots"`
	Breaks            []Break            `mapstructure:"breaks" json:"breaks"`
	HalfDays          []string           `mapstructure:"halfDays" json:"halfDays"`
	CounselingPeriods []CounselingPeriod `mapstructure:"counselingPeriods" json:"counselingPeriods"`
}

func InputFromJSON(file string) (Input, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Input{}, err
	}

	var inputJSON map[string]any
	if err := json.Unmarshal(bytes, &inputJSON); err != nil {
		return Input{}, err
	}

	var input Input
	if err := mapstructure.Decode(inputJSON, &input); err != nil {
		return Input{}, err
	}

	return input, nil
}

// DefaultGrid returns the stock six-day, eight-slot weekly structure with a
// short break and a lunch break, for demos and tests.
func DefaultGrid() (days []string, slots []string, breaks []Break) {
	days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	slots = []string{
		"09:00-10:00",
		"10:00-11:00",
		"11:00-11:30", // short break
		"11:30-12:30",
		"12:30-13:30",
		"13:30-14:30", // lunch break
		"14:30-15:30",
		"15:30-16:30",
	}
	breaks = []Break{
		{Day: "All", StartTime: "11:00", EndTime: "11:30", Label: "Short Break"},
		{Day: "All", StartTime: "13:30", EndTime: "14:30", Label: "Lunch Break"},
	}
	return days, slots, breaks
}
