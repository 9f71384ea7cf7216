package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/samber/lo"

	"github.com/divitgupta/DTL-Timetable/internal/engine"
)

// Sweeps the generator over a range of seeds and records per-run quality
// metrics. The heuristic is randomized, so schedule quality varies between
// seeds; the sweep shows how wide that spread is for a given configuration.

type BenchmarkResult struct {
	Seed          int64
	Duration      time.Duration
	Violations    int
	Satisfied     int
	PlacedHours   int
	RequiredHours int
	Verified      bool
}

func main() {
	filePathPtr := flag.String("file", "", "Path to the input file; if empty, the stock demo configuration is used")
	seedsPtr := flag.Int("seeds", 50, "Number of consecutive seeds to sweep, starting at 1")
	outFilePtr := flag.String("out", "benchmark_results.csv", "Path to the CSV output file")
	flag.Parse()

	input, err := loadInput(*filePathPtr)
	if err != nil {
		log.Fatalf("cannot load input: %v", err)
	}

	required := requiredHours(input)
	results := make([]BenchmarkResult, 0, *seedsPtr)

	for seed := int64(1); seed <= int64(*seedsPtr); seed++ {
		fmt.Printf("Benchmarking seed %v\n", seed)

		generator := engine.NewGenerator(engine.Options{Seed: seed})

		started := time.Now()
		result, err := generator.Generate(input)
		if err != nil {
			log.Fatalf("generation failed at seed %v: %v", seed, err)
		}

		results = append(results, BenchmarkResult{
			Seed:          seed,
			Duration:      time.Since(started),
			Violations:    len(result.Report.Violations),
			Satisfied:     len(result.Report.Satisfied),
			PlacedHours:   placedHours(result),
			RequiredHours: required,
			Verified:      generator.Verify(result, input),
		})
	}

	if err := toCsv(results, *outFilePtr); err != nil {
		log.Fatalf("cannot write CSV: %v", err)
	}
}

func loadInput(file string) (engine.Input, error) {
	if file != "" {
		return engine.InputFromJSON(file)
	}

	days, slots, breaks := engine.DefaultGrid()
	return engine.Input{
		Sections: []engine.Section{
			{ID: "CSE-A", Subjects: []string{"MATH", "PHY", "ELECTIVE"}, Room: "Room-101"},
			{ID: "CSE-B", Subjects: []string{"MATH", "PHY", "ELECTIVE"}, Room: "Room-102"},
			{ID: "CSE-C", Subjects: []string{"MATH", "PHY"}, Room: "Room-103"},
		},
		Subjects: []engine.Subject{
			{ID: "MATH", Name: "Mathematics", TheoryHours: 4, PreferEarly: true},
			{ID: "PHY", Name: "Physics", TheoryHours: 3, LabHours: 2},
			{ID: "ELECTIVE", Name: "Open Elective", TheoryHours: 2, IsBasket: true},
		},
		Teachers: []engine.Teacher{
			{ID: "T1", Name: "Dr. Rao", MaxLoad: 16},
			{ID: "T2", Name: "Prof. Iyer", MaxLoad: 16},
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
	}, nil
}

// requiredHours sums the weekly hours the configuration asks for: theory and
// lab hours per offering section, with basket theory counted once.
func requiredHours(input engine.Input) int {
	offerings := make(map[string]int, len(input.Subjects))
	for _, section := range input.Sections {
		for _, subjectID := range section.Subjects {
			offerings[subjectID]++
		}
	}

	return lo.SumBy(input.Subjects, func(subject engine.Subject) int {
		count := offerings[subject.ID]
		if count == 0 {
			return 0
		}
		hours := subject.LabHours * count
		if subject.IsBasket {
			hours += subject.TheoryHours
		} else {
			hours += subject.TheoryHours * count
		}
		return hours
	})
}

// placedHours counts distinct teaching sessions: an hour shared across
// sections counts once.
func placedHours(result *engine.Result) int {
	type session struct {
		ref       engine.SlotRef
		teacherID string
	}
	sessions := make(map[session]bool)
	for _, schedule := range result.Schedule {
		for ref, entry := range schedule {
			if entry.Type == engine.SessionCounseling {
				continue
			}
			sessions[session{ref: ref, teacherID: entry.TeacherID}] = true
		}
	}
	return len(sessions)
}

func toCsv(results []BenchmarkResult, outFile string) error {
	file, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Seed", "Duration(ms)", "Violations", "Satisfied", "PlacedHours", "RequiredHours", "Coverage(%)", "Verified"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, result := range results {
		record := []string{
			fmt.Sprintf("%d", result.Seed),
			fmt.Sprintf("%d", result.Duration.Milliseconds()),
			fmt.Sprintf("%d", result.Violations),
			fmt.Sprintf("%d", result.Satisfied),
			fmt.Sprintf("%d", result.PlacedHours),
			fmt.Sprintf("%d", result.RequiredHours),
			fmt.Sprintf("%.1f", coverage(result)),
			fmt.Sprintf("%v", result.Verified),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func coverage(result BenchmarkResult) float64 {
	if result.RequiredHours == 0 {
		return 100
	}
	return float64(result.PlacedHours) / float64(result.RequiredHours) * 100
}
