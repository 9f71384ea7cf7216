package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/divitgupta/DTL-Timetable/internal/config"
	"github.com/divitgupta/DTL-Timetable/internal/engine"
)

// output is the marshalable rendition of a generation result: section
// schedules are re-keyed by day name and slot string.
type output struct {
	RunID           string                                  `json:"runId"`
	Seed            int64                                   `json:"seed"`
	Schedule        map[string]map[string]map[string]*entry `json:"schedule"`
	TeacherSchedule map[string]map[string][]string          `json:"teacherSchedule"`
	Report          engine.Report                           `json:"constraintReport"`
	Log             []engine.LogEntry                       `json:"generationLog"`
}

type entry struct {
	Subject   string `json:"subject"`
	Teacher   string `json:"teacher"`
	Type      string `json:"type"`
	Room      string `json:"room"`
	BlockPart string `json:"blockPart,omitempty"`
}

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the input file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	seedPtr := flag.Int64("seed", 0, "Random seed; 0 derives one from the current time")
	flag.Parse()
	filePath := *filePathPtr
	outFile := *outFilePathPtr

	if filePath == "" {
		log.Fatal("an input file must be specified")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Extract input
	input, err := engine.InputFromJSON(filePath)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}

	options := cfg.EngineOptions()
	if *seedPtr != 0 {
		options.Seed = *seedPtr
	}
	options.Logger = logger

	// Build timetable
	generator := engine.NewGenerator(options)
	result, err := generator.Generate(input)
	if err != nil {
		var validation *engine.ValidationError
		if errors.As(err, &validation) {
			logger.Error("input rejected", zap.Int("problems", len(validation.Problems)))
			for _, problem := range validation.Problems {
				fmt.Fprintf(os.Stderr, "  - %v\n", problem)
			}
			os.Exit(1)
		}
		log.Fatalf("an error occurred during timetable construction: %v", err)
	}

	// Verify timetable correctness
	if !generator.Verify(result, input) {
		logger.Error("verification failed", zap.String("runId", result.RunID))
		os.Exit(15)
	}

	// Marshal output into json
	outputJson, err := json.MarshalIndent(buildOutput(result, input), "", "  ")
	if err != nil {
		log.Fatalf("an error occurred while building output json: %v", err)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Println(string(outputJson))
	} else {
		err := os.WriteFile(outFile, outputJson, 0666)
		if err != nil {
			log.Fatalf("an error occurred while writing to the output file: %v", err)
		}
	}

	logger.Info("timetable generated",
		zap.String("runId", result.RunID),
		zap.Int64("seed", result.Seed),
		zap.Int("violations", len(result.Report.Violations)),
	)
}

func buildOutput(result *engine.Result, input engine.Input) output {
	schedule := make(map[string]map[string]map[string]*entry, len(result.Schedule))
	for sectionID, sectionSchedule := range result.Schedule {
		days := make(map[string]map[string]*entry)
		for ref, placed := range sectionSchedule {
			day := input.WorkingDays[ref.Day]
			if days[day] == nil {
				days[day] = make(map[string]*entry)
			}
			days[day][input.TimeSlots[ref.Slot]] = &entry{
				Subject:   placed.SubjectName,
				Teacher:   placed.TeacherName,
				Type:      string(placed.Type),
				Room:      placed.Room,
				BlockPart: placed.BlockPart,
			}
		}
		schedule[sectionID] = days
	}

	return output{
		RunID:           result.RunID,
		Seed:            result.Seed,
		Schedule:        schedule,
		TeacherSchedule: result.TeacherSchedule,
		Report:          result.Report,
		Log:             result.Log,
	}
}
