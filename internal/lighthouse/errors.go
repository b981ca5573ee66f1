package lighthouse

import (
	"errors"
	"fmt"
)

// ErrMissingField is returned when a report lacks a required numeric field.
var ErrMissingField = errors.New("missing report field")

// Stage names the step of a run that failed.
type Stage string

const (
	// StageExec covers spawning Lighthouse and its exit status.
	StageExec Stage = "exec"
	// StageRead covers reading the JSON report from disk.
	StageRead Stage = "read"
	// StageDecode covers parsing and validating the JSON report.
	StageDecode Stage = "decode"
)

// RunError is the failure record of a single run.
type RunError struct {
	Index int
	Stage Stage
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run %d %s: %v", e.Index, e.Stage, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
