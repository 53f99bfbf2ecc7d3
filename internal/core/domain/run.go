package domain

import (
	"time"
)

// Status values used across RunResult, StepResult and CheckResult.
const (
	StatusOK         = "ok"
	StatusError      = "error"
	StatusInProgress = "in-progress"
	StatusSkipped    = "skipped"
)

// Well-known step names, in pipeline order.
const (
	StepInstall       = "install"
	StepMigrate       = "migrate"
	StepCollectStatic = "collectstatic"
)

// ExitCommandNotFound is reported when a step's binary could not be
// started at all. Matches the shell convention for command-not-found.
const ExitCommandNotFound = 127

// Command describes one external process invocation.
type Command struct {
	Bin  string
	Args []string
	Dir  string
	Env  []string
}

// CommandResult is what running a Command produced.
type CommandResult struct {
	ExitCode int
	Duration time.Duration
}

// StepSpec binds a step name to the command that implements it.
type StepSpec struct {
	Name    string
	Command Command
}

// StepResult is the outcome of a single bootstrap step.
type StepResult struct {
	Name       string `json:"name"`
	Status     string `json:"status"` // "ok", "error", "skipped"
	ExitCode   int    `json:"exit_code"`
	DurationMs int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// RunResult is the aggregate outcome of a full bootstrap run. Steps are
// recorded in execution order; a failed run still lists the steps that
// never ran, with status "skipped".
type RunResult struct {
	RunID      string       `json:"run_id"`
	Status     string       `json:"status"` // "ok", "error", "in-progress"
	ExitCode   int          `json:"exit_code"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Steps      []StepResult `json:"steps"`
}

// FailedStep returns the first step that ended in error, or nil.
func (r *RunResult) FailedStep() *StepResult {
	for i := range r.Steps {
		if r.Steps[i].Status == StatusError {
			return &r.Steps[i]
		}
	}
	return nil
}

// CheckResult is the outcome of a single preflight probe.
type CheckResult struct {
	Name      string `json:"name"`
	OK        bool   `json:"ok"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// PreflightResult aggregates all preflight probes.
type PreflightResult struct {
	OK     bool          `json:"ok"`
	Checks []CheckResult `json:"checks"`
}
