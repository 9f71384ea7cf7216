package engine

import (
	"fmt"
	"strings"
)

// ValidationError aborts generation before any scheduling attempt. It carries
// the full list of configuration problems, including every missing
// (section, subject) teacher mapping.
type ValidationError struct {
	Problems []string
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("invalid generation input: %s", strings.Join(err.Problems, "; "))
}

func validate(input Input) []string {
	problems := make([]string, 0)

	if len(input.Sections) == 0 {
		problems = append(problems, "at least one section is required")
	}
	if len(input.Subjects) == 0 {
		problems = append(problems, "at least one subject is required")
	}
	if len(input.Teachers) == 0 {
		problems = append(problems, "at least one teacher is required")
	}
	if len(input.Mappings) == 0 {
		problems = append(problems, "at least one teacher-subject mapping is required")
	}
	if len(input.WorkingDays) == 0 {
		problems = append(problems, "at least one working day is required")
	}
	if len(input.TimeSlots) == 0 {
		problems = append(problems, "at least one time slot is required")
	}
	if len(problems) > 0 {
		return problems
	}

	subjects := make(map[string]bool, len(input.Subjects))
	for _, subject := range input.Subjects {
		subjects[subject.ID] = true
	}
	teachers := make(map[string]bool, len(input.Teachers))
	for _, teacher := range input.Teachers {
		teachers[teacher.ID] = true
	}

	for _, mapping := range input.Mappings {
		if !teachers[mapping.TeacherID] {
			problems = append(problems, fmt.Sprintf("mapping for subject %s references unknown teacher %s", mapping.SubjectID, mapping.TeacherID))
		}
	}

	// Every (section, subject) pair must have a resolvable teacher mapping,
	// either section-specific or "All"-scoped.
	for _, section := range input.Sections {
		for _, subjectID := range section.Subjects {
			if !subjects[subjectID] {
				problems = append(problems, fmt.Sprintf("section %s references unknown subject %s", section.ID, subjectID))
				continue
			}
			if resolveMapping(input.Mappings, section.ID, subjectID) == nil {
				problems = append(problems, fmt.Sprintf("no teacher mapping for subject %s in section %s", subjectID, section.ID))
			}
		}
	}

	return problems
}

// resolveMapping returns the mapping for the (section, subject) pair,
// preferring section-specific entries over "All"-scoped ones.
func resolveMapping(mappings []Mapping, sectionID, subjectID string) *Mapping {
	var general *Mapping
	for i, mapping := range mappings {
		if mapping.SubjectID != subjectID {
			continue
		}
		if mapping.SectionID == sectionID {
			return &mappings[i]
		}
		if general == nil && (mapping.SectionID == MappingAllSections || mapping.SectionID == "") {
			general = &mappings[i]
		}
	}
	return general
}
