package lighthouse

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// CommandRunner executes a subprocess to completion.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) ([]byte, error)
}

type execRunner struct {
	log logrus.FieldLogger
}

// NewExecRunner returns a CommandRunner backed by os/exec.
func NewExecRunner(log logrus.FieldLogger) CommandRunner {
	return &execRunner{
		log: log.WithField("component", "exec_runner"),
	}
}

// Run executes cmd and returns its combined output. The error carries the
// output so failing audits can be diagnosed.
func (r *execRunner) Run(ctx context.Context, cmd Command) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //nolint:gosec // command is built from operator config
	r.log.WithField("command", c.String()).Debug("executing lighthouse command")

	output, err := c.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("command failed: %w\nOutput: %s", err, string(output))
	}

	return output, nil
}

// Compile-time interface compliance check
var _ CommandRunner = (*execRunner)(nil)
