// Package campaign drives a fixed number of Lighthouse runs and joins their
// results.
package campaign

import (
	"errors"
	"fmt"
	"time"
)

// DefaultRuns is the number of audits in a campaign unless configured otherwise.
const DefaultRuns = 5

// ErrAlreadyRun is returned when Run is called on an orchestrator that has
// already started.
var ErrAlreadyRun = errors.New("campaign already run")

// Mode selects how runs are scheduled.
type Mode string

const (
	// ModeSequential awaits each run before starting the next.
	ModeSequential Mode = "sequential"
	// ModeConcurrent launches every run at once and joins them all.
	ModeConcurrent Mode = "concurrent"
)

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSequential, ModeConcurrent:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (want %s or %s)", s, ModeSequential, ModeConcurrent)
	}
}

// State is the lifecycle of an orchestrator.
type State int32

const (
	// StateIdle is the state before Run.
	StateIdle State = iota
	// StateRunning is the state while runs are in flight.
	StateRunning
	// StateDone is the state once every run has settled.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// RunOutcome records how one run settled.
type RunOutcome struct {
	Index      int
	Duration   time.Duration
	// TotalScore is the run's performance score; only meaningful when Err is nil.
	TotalScore float64
	Err        error
}

// Succeeded reports whether the run contributed samples.
func (o RunOutcome) Succeeded() bool {
	return o.Err == nil
}

// Result is the joined outcome of a campaign. Outcomes are ordered by run index.
type Result struct {
	Mode     Mode
	Outcomes []RunOutcome
	Duration time.Duration
}

// Total returns the number of runs attempted.
func (r *Result) Total() int {
	return len(r.Outcomes)
}

// Succeeded returns the number of runs that contributed samples.
func (r *Result) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Succeeded() {
			n++
		}
	}

	return n
}

// Failed returns the outcomes of runs that did not contribute samples.
func (r *Result) Failed() []RunOutcome {
	failed := make([]RunOutcome, 0)
	for _, o := range r.Outcomes {
		if !o.Succeeded() {
			failed = append(failed, o)
		}
	}

	return failed
}

// FailedIndices returns the 1-based indices of failed runs.
func (r *Result) FailedIndices() []int {
	failed := r.Failed()
	indices := make([]int, len(failed))
	for i, o := range failed {
		indices[i] = o.Index
	}

	return indices
}
