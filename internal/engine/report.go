package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// LogEntry is one diagnostic line of the generation log. The log is ordered
// and exists for observability, not correctness.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// Report itemizes the outcome of one generation run: every unmet constraint,
// every satisfied one, the per-teacher workload snapshot and any assumptions
// made along the way.
type Report struct {
	Violations      []string       `json:"violations"`
	Satisfied       []string       `json:"satisfiedConstraints"`
	TeacherWorkload map[string]int `json:"teacherWorkload"`
	Assumptions     []string       `json:"assumptions"`
}

// Result is the immutable output of a completed generation run.
type Result struct {
	RunID           string                         `json:"runId"`
	Seed            int64                          `json:"seed"`
	Schedule        map[string]SectionSchedule     `json:"-"`
	TeacherSchedule map[string]map[string][]string `json:"teacherSchedule"`
	Report          Report                         `json:"constraintReport"`
	Log             []LogEntry                     `json:"generationLog"`
}

// runLog accumulates the in-memory generation log and mirrors every line to
// the injected structured logger.
type runLog struct {
	logger  *zap.Logger
	entries []LogEntry
}

func (log *runLog) logf(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.entries = append(log.entries, LogEntry{Time: time.Now(), Message: message})
	log.logger.Debug(message)
}

func (log *runLog) phase(name string) {
	log.logf("entering phase: %s", name)
	log.logger.Info("phase transition", zap.String("phase", name))
}
