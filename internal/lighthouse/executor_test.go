package lighthouse

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/ethpandaops/heliograph/internal/metric"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner writes a report to the --output-path it is given instead of
// spawning Lighthouse.
type fakeRunner struct {
	fs     afero.Fs
	report string
	err    error
	calls  []Command
}

func (f *fakeRunner) Run(_ context.Context, cmd Command) ([]byte, error) {
	f.calls = append(f.calls, cmd)
	if f.err != nil {
		return nil, f.err
	}

	if f.report == "" {
		return nil, nil
	}

	for _, arg := range cmd.Args {
		if prefix, ok := strings.CutPrefix(arg, "--output-path="); ok {
			return nil, afero.WriteFile(f.fs, prefix+ReportJSONSuffix, []byte(f.report), 0o600)
		}
	}

	return nil, errors.New("no output path")
}

func newTestExecutor(runner *fakeRunner) Executor {
	return NewExecutor(ExecutorConfig{
		Logger: logrus.New(),
		Fs:     runner.fs,
		Runner: runner,
		Binary: "lighthouse",
	})
}

func TestExecutor_Run(t *testing.T) {
	runner := &fakeRunner{fs: afero.NewMemMapFs(), report: reportJSON(0.87, 250)}
	exec := newTestExecutor(runner)

	samples, err := exec.Run(context.Background(), RunConfig{
		URL:          "https://example.com",
		Device:       DeviceDesktop,
		OutputPrefix: "/reports/run-1",
		Index:        1,
	})
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "lighthouse", runner.calls[0].Name)
	assert.Contains(t, runner.calls[0].Args, "--preset=desktop")

	assert.InDelta(t, 0.87, samples[metric.KeyTotal].Value, 1e-9)
	assert.InDelta(t, 250, samples[metric.KeyLCP].Value, 1e-9)
}

func TestExecutor_RunFailures(t *testing.T) {
	spawnErr := errors.New("exit status 1")

	tests := []struct {
		name  string
		setup func(fs afero.Fs) *fakeRunner
		stage Stage
	}{
		{
			name: "subprocess fails",
			setup: func(fs afero.Fs) *fakeRunner {
				return &fakeRunner{fs: fs, err: spawnErr}
			},
			stage: StageExec,
		},
		{
			name: "report missing",
			setup: func(fs afero.Fs) *fakeRunner {
				return &fakeRunner{fs: fs}
			},
			stage: StageRead,
		},
		{
			name: "report corrupt",
			setup: func(fs afero.Fs) *fakeRunner {
				return &fakeRunner{fs: fs, report: `{"audits": [`}
			},
			stage: StageDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := tt.setup(afero.NewMemMapFs())
			exec := newTestExecutor(runner)

			samples, err := exec.Run(context.Background(), RunConfig{
				URL:          "https://example.com",
				Device:       DeviceMobile,
				OutputPrefix: "/reports/run-4",
				Index:        4,
			})
			require.Error(t, err)
			assert.Nil(t, samples)

			var runErr *RunError
			require.ErrorAs(t, err, &runErr)
			assert.Equal(t, tt.stage, runErr.Stage)
			assert.Equal(t, 4, runErr.Index)
		})
	}
}

func TestExecutor_ReadErrorWrapsNotExist(t *testing.T) {
	exec := newTestExecutor(&fakeRunner{fs: afero.NewMemMapFs()})

	_, err := exec.Run(context.Background(), RunConfig{URL: "https://example.com", OutputPrefix: "/x", Index: 1})
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestExecRunner_PropagatesExitFailure(t *testing.T) {
	runner := NewExecRunner(logrus.New())

	_, err := runner.Run(context.Background(), Command{Name: "heliograph-this-binary-does-not-exist"})
	require.Error(t, err)
}
