package validate

import (
	"github.com/vk/casebridge/internal/assemble"
)

// Entry records one entity with at least one violation.
type Entry struct {
	ID     string   `json:"@id"`
	Errors []string `json:"errors"`
}

// Summary carries per-category totals; map keys are stable under Go's
// sorted map marshaling, keeping report files diff-friendly.
type Summary map[string]int

// FrameworkReport is the validation report of the course/framework pass.
// The category lists are always emitted, empty or not.
type FrameworkReport struct {
	Frameworks   []Entry `json:"frameworks"`
	Competencies []Entry `json:"competencies"`
	Courses      []Entry `json:"courses"`
	Summary      Summary `json:"summary"`
}

// HasViolations reports whether any entity in any category failed a rule.
func (r *FrameworkReport) HasViolations() bool {
	return len(r.Frameworks)+len(r.Competencies)+len(r.Courses) > 0
}

// ForFrameworks validates every framework, member clone, and course in the
// set and builds the pass report.
func ForFrameworks(set *assemble.FrameworkSet, base string) *FrameworkReport {
	report := &FrameworkReport{
		Frameworks:   []Entry{},
		Competencies: []Entry{},
		Courses:      []Entry{},
	}

	for _, entry := range set.Entries {
		if errs := Framework(entry.Framework, base); len(errs) > 0 {
			report.Frameworks = append(report.Frameworks, Entry{ID: entry.Framework.ID, Errors: errs})
		}
		for _, member := range entry.Members {
			if errs := Competency(member); len(errs) > 0 {
				report.Competencies = append(report.Competencies, Entry{ID: member.ID, Errors: errs})
			}
		}
	}
	// Courses are validated after all assembly so their teaches lists are
	// final, mirroring the pass ordering of the conversion.
	for _, entry := range set.Entries {
		if errs := Course(entry.Course, base); len(errs) > 0 {
			report.Courses = append(report.Courses, Entry{ID: entry.Course.ID, Errors: errs})
		}
	}

	report.Summary = Summary{
		"framework_count":        len(set.Entries),
		"framework_error_count":  len(report.Frameworks),
		"competency_count":       set.MemberCount(),
		"competency_error_count": len(report.Competencies),
		"course_count":           len(set.Entries),
		"course_error_count":     len(report.Courses),
	}
	return report
}

// ProgramReport is the validation report of the pathway pass.
type ProgramReport struct {
	LearningPrograms []Entry `json:"learningPrograms"`
	Summary          Summary `json:"summary"`
}

// HasViolations reports whether any learning program failed a rule.
func (r *ProgramReport) HasViolations() bool {
	return len(r.LearningPrograms) > 0
}

// ForPrograms validates every learning program in the set.
func ForPrograms(set *assemble.ProgramSet, base string) *ProgramReport {
	report := &ProgramReport{LearningPrograms: []Entry{}}
	for _, entry := range set.Entries {
		if errs := Program(entry.Program, base); len(errs) > 0 {
			report.LearningPrograms = append(report.LearningPrograms, Entry{ID: entry.Program.ID, Errors: errs})
		}
	}
	report.Summary = Summary{
		"learning_program_count":       len(set.Entries),
		"learning_program_error_count": len(report.LearningPrograms),
	}
	return report
}
