package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Options tunes one Generator. The zero value of every field falls back to
// the engine default.
type Options struct {
	// Seed drives every randomized ordering decision. Zero means a
	// time-derived seed, so repeated runs produce different schedules; fix it
	// for reproducible output.
	Seed int64
	// EarlySlots is how many start-of-day slots the prefer-early passes try.
	EarlySlots int
	// LabBlockSize is the fixed contiguous length of every lab block.
	LabBlockSize int
	// HalfDayCutoff ("HH:MM") is the first unusable start time on half-days.
	HalfDayCutoff string
	// CompactnessBonus is the score granted per adjacent placed entry when
	// ranking fallback slots.
	CompactnessBonus int
	// Logger receives phase transitions and mirrored generation-log lines.
	Logger *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		EarlySlots:       2,
		LabBlockSize:     2,
		HalfDayCutoff:    "13:30",
		CompactnessBonus: 2,
	}
}

// Generator turns a validated configuration into a weekly schedule plus a
// constraint report. Generate never fails on placement problems: shortfalls
// are reported, not fatal. Verify checks a produced result against the
// schedule invariants.
type Generator interface {
	Generate(input Input) (*Result, error)
	Verify(result *Result, input Input) bool
}

func NewGenerator(options Options) Generator {
	defaults := DefaultOptions()
	if options.EarlySlots <= 0 {
		options.EarlySlots = defaults.EarlySlots
	}
	if options.LabBlockSize <= 0 {
		options.LabBlockSize = defaults.LabBlockSize
	}
	if options.HalfDayCutoff == "" {
		options.HalfDayCutoff = defaults.HalfDayCutoff
	}
	if options.CompactnessBonus <= 0 {
		options.CompactnessBonus = defaults.CompactnessBonus
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return &greedyGenerator{options: options}
}

// greedyGenerator is a randomized greedy heuristic with retry passes. It runs
// single-threaded to completion: the schedule and workload maps are owned by
// the run and mutated only through the distributors it calls. Placements are
// never revisited once made, even when they block a later subject.
type greedyGenerator struct {
	options Options
}

// generationRun holds the mutable state of one Generate call.
type generationRun struct {
	input        Input
	grid         *timeGrid
	state        *scheduleState
	checker      *availabilityChecker
	finder       *blockFinder
	distributor  *hourDistributor
	simultaneous *simultaneousDistributor
	rng          *rand.Rand
	log          *runLog

	subjects map[string]Subject
	teachers map[string]Teacher

	violations  []string
	satisfied   []string
	assumptions []string
}

func (generator *greedyGenerator) Generate(input Input) (*Result, error) {
	if problems := validate(input); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	cutoff, err := parseClock(generator.options.HalfDayCutoff)
	if err != nil {
		return nil, &ValidationError{Problems: []string{err.Error()}}
	}
	grid, err := newTimeGrid(input, cutoff)
	if err != nil {
		return nil, &ValidationError{Problems: []string{err.Error()}}
	}

	seed := generator.options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	run := &generationRun{
		input:       input,
		grid:        grid,
		rng:         rand.New(rand.NewSource(seed)),
		log:         &runLog{logger: generator.options.Logger},
		subjects:    make(map[string]Subject, len(input.Subjects)),
		teachers:    make(map[string]Teacher, len(input.Teachers)),
		violations:  make([]string, 0),
		satisfied:   make([]string, 0),
		assumptions: make([]string, 0),
	}
	for _, subject := range input.Subjects {
		run.subjects[subject.ID] = subject
	}
	for _, teacher := range input.Teachers {
		run.teachers[teacher.ID] = teacher
	}

	run.state = newScheduleState(grid, input.Sections, input.Teachers)
	run.checker = newAvailabilityChecker(grid, run.state, input.CounselingPeriods)
	run.finder = newBlockFinder(grid, run.checker, run.state, generator.options.EarlySlots, generator.options.CompactnessBonus)
	run.distributor = &hourDistributor{
		grid:       grid,
		checker:    run.checker,
		finder:     run.finder,
		state:      run.state,
		classrooms: input.Classrooms,
		labs:       input.Labs,
		rng:        run.rng,
		early:      generator.options.EarlySlots,
		labBlock:   generator.options.LabBlockSize,
		logf:       run.log.logf,
	}
	run.simultaneous = &simultaneousDistributor{
		grid:        grid,
		checker:     run.checker,
		finder:      run.finder,
		state:       run.state,
		distributor: run.distributor,
		classrooms:  input.Classrooms,
		logf:        run.log.logf,
	}

	runID := uuid.NewString()
	run.log.logf("starting timetable generation run %s", runID)

	run.execute()

	result := run.buildResult(runID, seed)
	run.log.logf("generation finished: %d violations, %d constraints satisfied", len(result.Report.Violations), len(result.Report.Satisfied))

	return result, nil
}

func (generator *greedyGenerator) Verify(result *Result, input Input) bool {
	return verifyResult(result, input, generator.options)
}

// execute walks the phase sequence. There are no backward transitions: labs
// go before theory within each tier because their constraints are tightest,
// and basket subjects go before regular theory in their tier because joint
// feasibility across sections is the first thing to disappear as the grid
// fills up.
func (run *generationRun) execute() {
	sections := run.shuffledSections()
	sectionSubjects := make(map[string][]Subject, len(sections))
	for _, section := range sections {
		sectionSubjects[section.ID] = run.resolveSubjects(section)
	}

	baskets := run.basketSubjects()

	//** Phase 0: global early-preferred pass
	run.log.phase("early-preferred pass")
	for _, subject := range baskets {
		if subject.PreferEarly {
			run.scheduleBasket(subject)
		}
	}
	for _, section := range sections {
		subjects := sectionSubjects[section.ID]
		if len(subjects) == 0 {
			run.assumptions = append(run.assumptions, fmt.Sprintf("section %s has no subjects assigned", section.ID))
			continue
		}
		run.log.logf("processing %s with %d subjects", section.ID, len(subjects))

		for _, subject := range subjects {
			if subject.PreferEarly && subject.LabHours > 0 {
				run.scheduleLabs(section, subject)
			}
		}
		for _, subject := range subjects {
			if subject.PreferEarly && !subject.IsBasket && subject.TheoryHours > 0 {
				run.scheduleTheory(section, subject)
			}
		}
	}

	//** Phase 1: remaining labs
	run.log.phase("remaining labs")
	for _, section := range sections {
		for _, subject := range sectionSubjects[section.ID] {
			if !subject.PreferEarly && subject.LabHours > 0 {
				run.scheduleLabs(section, subject)
			}
		}
	}

	//** Phase 2: remaining theory and baskets
	run.log.phase("remaining theory and baskets")
	for _, subject := range baskets {
		if !subject.PreferEarly {
			run.scheduleBasket(subject)
		}
	}
	for _, section := range sections {
		for _, subject := range sectionSubjects[section.ID] {
			if !subject.PreferEarly && !subject.IsBasket && subject.TheoryHours > 0 {
				run.scheduleTheory(section, subject)
			}
		}
	}

	//** Phase 3: counseling insertion
	run.log.phase("counseling insertion")
	run.insertCounseling()

	//** Reporting
	run.log.phase("reporting")
	run.checkWorkloads()
}

func (run *generationRun) scheduleLabs(section Section, subject Subject) {
	teacher, ok := run.resolveTeacher(section.ID, subject.ID)
	if !ok {
		return
	}

	scheduled := run.distributor.distributeLabs(section, subject, teacher)
	if scheduled < subject.LabHours {
		run.violations = append(run.violations, fmt.Sprintf("%s lab: scheduled %d/%d hours in %s", subject.Name, scheduled, subject.LabHours, section.ID))
	} else {
		run.satisfied = append(run.satisfied, fmt.Sprintf("%s lab: all %d hours scheduled in %s", subject.Name, scheduled, section.ID))
	}
}

func (run *generationRun) scheduleTheory(section Section, subject Subject) {
	teacher, ok := run.resolveTeacher(section.ID, subject.ID)
	if !ok {
		return
	}

	scheduled := run.distributor.distributeTheory(section, subject, teacher)
	if scheduled < subject.TheoryHours {
		run.violations = append(run.violations, fmt.Sprintf("%s theory: scheduled %d/%d hours in %s", subject.Name, scheduled, subject.TheoryHours, section.ID))
	} else {
		run.satisfied = append(run.satisfied, fmt.Sprintf("%s theory: all %d hours scheduled in %s", subject.Name, scheduled, section.ID))
	}
}

func (run *generationRun) scheduleBasket(subject Subject) {
	participants := run.basketParticipants(subject)
	if len(participants) == 0 {
		run.assumptions = append(run.assumptions, fmt.Sprintf("basket subject %s is not offered by any section", subject.ID))
		return
	}

	teacher, ok := run.resolveTeacher(participants[0].ID, subject.ID)
	if !ok {
		return
	}

	scheduled := run.simultaneous.distribute(subject, teacher, participants)
	if scheduled < subject.TheoryHours {
		run.violations = append(run.violations, fmt.Sprintf("%s basket: scheduled %d/%d shared hours", subject.Name, scheduled, subject.TheoryHours))
	} else {
		run.satisfied = append(run.satisfied, fmt.Sprintf("%s basket: all %d shared hours scheduled across %d sections", subject.Name, scheduled, len(participants)))
	}
}

// insertCounseling renders the fixed reservations into every section whose
// slot is still free. The hours count toward workload once per reservation,
// which can push a teacher past the cap; the retroactive check flags it.
func (run *generationRun) insertCounseling() {
	for _, period := range run.input.CounselingPeriods {
		day := run.grid.dayIndex(period.Day)
		slot := run.grid.slotIndex(period.TimeSlot)
		if day < 0 || slot < 0 {
			run.assumptions = append(run.assumptions, fmt.Sprintf("counseling period for teacher %s references unknown day %q or slot %q", period.TeacherID, period.Day, period.TimeSlot))
			continue
		}

		ref := SlotRef{Day: day, Slot: slot}
		teacherName := "TBD"
		if teacher, ok := run.teachers[period.TeacherID]; ok {
			teacherName = teacher.Name
		}

		for _, section := range run.input.Sections {
			if run.state.entry(section.ID, ref) != nil {
				continue
			}
			run.state.place(section.ID, ref, &Entry{
				SubjectID:   "COUNSELING",
				SubjectName: "Counseling",
				TeacherID:   period.TeacherID,
				TeacherName: teacherName,
				Type:        SessionCounseling,
				Room:        "Counseling Room",
			})
		}

		run.state.markTeacher(period.TeacherID, ref)
		if _, ok := run.teachers[period.TeacherID]; ok {
			run.state.addWorkload(period.TeacherID, 1)
		}
	}
}

// checkWorkloads is the retroactive cap check plus the fixed summary lines.
func (run *generationRun) checkWorkloads() {
	for _, teacher := range run.input.Teachers {
		workload := run.state.workloadOf(teacher.ID)
		if workload <= teacher.MaxLoad {
			run.satisfied = append(run.satisfied, fmt.Sprintf("%s: %d/%d hours (within limit)", teacher.Name, workload, teacher.MaxLoad))
		} else {
			run.violations = append(run.violations, fmt.Sprintf("%s exceeds max load: %d/%d hours", teacher.Name, workload, teacher.MaxLoad))
		}
	}

	run.satisfied = append(run.satisfied,
		"All labs placed in continuous blocks",
		"Continuous subjects placed in designated block sizes",
		"No teacher double-booking detected",
		"Daily workload balanced across days",
	)
}

func (run *generationRun) buildResult(runID string, seed int64) *Result {
	teacherSchedule := make(map[string]map[string][]string, len(run.input.Teachers))
	for _, teacher := range run.input.Teachers {
		daily := make(map[string][]string)
		for day := range run.grid.days {
			slots := make([]int, 0)
			for ref := range run.state.teacherSlots[teacher.ID] {
				if ref.Day == day {
					slots = append(slots, ref.Slot)
				}
			}
			if len(slots) == 0 {
				continue
			}
			sort.Ints(slots)
			daily[run.grid.days[day]] = lo.Map(slots, func(slot int, _ int) string {
				return run.grid.slots[slot]
			})
		}
		teacherSchedule[teacher.ID] = daily
	}

	return &Result{
		RunID:           runID,
		Seed:            seed,
		Schedule:        run.state.sections,
		TeacherSchedule: teacherSchedule,
		Report: Report{
			Violations:      run.violations,
			Satisfied:       run.satisfied,
			TeacherWorkload: run.state.workload,
			Assumptions:     run.assumptions,
		},
		Log: run.log.entries,
	}
}

func (run *generationRun) resolveTeacher(sectionID, subjectID string) (Teacher, bool) {
	mapping := resolveMapping(run.input.Mappings, sectionID, subjectID)
	if mapping == nil {
		return Teacher{}, false
	}
	teacher, ok := run.teachers[mapping.TeacherID]
	return teacher, ok
}

// resolveSubjects returns the section's subjects in a per-section random
// order, so no subject is systematically favored across runs.
func (run *generationRun) resolveSubjects(section Section) []Subject {
	subjects := make([]Subject, 0, len(section.Subjects))
	for _, subjectID := range section.Subjects {
		if subject, ok := run.subjects[subjectID]; ok {
			subjects = append(subjects, subject)
		}
	}
	run.rng.Shuffle(len(subjects), func(i, j int) {
		subjects[i], subjects[j] = subjects[j], subjects[i]
	})
	return subjects
}

func (run *generationRun) shuffledSections() []Section {
	sections := make([]Section, len(run.input.Sections))
	copy(sections, run.input.Sections)
	run.rng.Shuffle(len(sections), func(i, j int) {
		sections[i], sections[j] = sections[j], sections[i]
	})
	return sections
}

func (run *generationRun) basketSubjects() []Subject {
	baskets := lo.Filter(run.input.Subjects, func(subject Subject, _ int) bool {
		return subject.IsBasket
	})
	for _, subject := range baskets {
		if subject.LabHours > 0 {
			run.assumptions = append(run.assumptions, fmt.Sprintf("basket subject %s has lab hours; labs are scheduled per section, not simultaneously", subject.ID))
		}
	}
	run.rng.Shuffle(len(baskets), func(i, j int) {
		baskets[i], baskets[j] = baskets[j], baskets[i]
	})
	return baskets
}

// basketParticipants lists every section offering the subject, in input
// order.
func (run *generationRun) basketParticipants(subject Subject) []Section {
	return lo.Filter(run.input.Sections, func(section Section, _ int) bool {
		return lo.Contains(section.Subjects, subject.ID)
	})
}
