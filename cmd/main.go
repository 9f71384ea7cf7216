package main

import (
	"fmt"
	"log"

	"github.com/divitgupta/DTL-Timetable/internal/engine"
)

// Development playground: generates a timetable for a small hardcoded
// configuration and prints it section by section.
func main() {
	const Seed = 42

	days, slots, breaks := engine.DefaultGrid()
	input := engine.Input{
		Sections: []engine.Section{
			{ID: "CSE-A", Subjects: []string{"MATH", "PHY", "ELECTIVE"}, Room: "Room-101"},
			{ID: "CSE-B", Subjects: []string{"MATH", "PHY", "ELECTIVE"}, Room: "Room-102"},
		},
		Subjects: []engine.Subject{
			{ID: "MATH", Name: "Mathematics", TheoryHours: 4, PreferEarly: true},
			{ID: "PHY", Name: "Physics", TheoryHours: 3, LabHours: 2},
			{ID: "ELECTIVE", Name: "Open Elective", TheoryHours: 2, IsBasket: true},
		},
		Teachers: []engine.Teacher{
			{ID: "T1", Name: "Dr. Rao", MaxLoad: 12},
			{ID: "T2", Name: "Prof. Iyer", MaxLoad: 10},
		},
		Mappings: []engine.Mapping{
			{TeacherID: "T1", SubjectID: "MATH", SectionID: engine.MappingAllSections},
			{TeacherID: "T2", SubjectID: "PHY", SectionID: engine.MappingAllSections},
			{TeacherID: "T2", SubjectID: "ELECTIVE", SectionID: engine.MappingAllSections},
		},
		Classrooms:  []string{"Room-201", "Room-202"},
		Labs:        []string{"Lab-1", "Lab-2"},
		WorkingDays: days,
		TimeSlots:   slots,
		Breaks:      breaks,
		HalfDays:    []string{"Saturday"},
		CounselingPeriods: []engine.CounselingPeriod{
			{TeacherID: "T1", Day: "Wednesday", TimeSlot: slots[len(slots)-1]},
		},
	}

	generator := engine.NewGenerator(engine.Options{Seed: Seed})
	result, err := generator.Generate(input)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	for _, section := range input.Sections {
		fmt.Printf("\n== %v ==\n", section.ID)
		schedule := result.Schedule[section.ID]
		for dayIndex, day := range days {
			fmt.Printf("%v:\n", day)
			for slotIndex, slot := range slots {
				entry := schedule[engine.SlotRef{Day: dayIndex, Slot: slotIndex}]
				if entry == nil {
					continue
				}
				fmt.Printf("  %v  %v (%v) with %v in %v\n", slot, entry.SubjectName, entry.Type, entry.TeacherName, entry.Room)
			}
		}
	}

	fmt.Printf("\nViolations: %v\n", len(result.Report.Violations))
	for _, violation := range result.Report.Violations {
		fmt.Printf("  - %v\n", violation)
	}
	fmt.Printf("Satisfied: %v\n", len(result.Report.Satisfied))

	if !generator.Verify(result, input) {
		log.Fatal("Verification failed")
	}

	fmt.Println("Well done!")
}
