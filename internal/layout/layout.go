// Package layout derives where a campaign writes its reports.
package layout

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// SummaryFile is the name of the per-campaign summary written next to the reports.
const SummaryFile = "summary.txt"

// stampLayout is ISO-8601 in UTC with milliseconds and ':' replaced by '.'.
const stampLayout = "2006-01-02T15.04.05.000Z"

// ErrInvalidTarget is returned for URLs that cannot be audited.
var ErrInvalidTarget = errors.New("invalid target url")

// ParseTarget validates raw as an absolute http(s) URL.
func ParseTarget(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidTarget, u.Scheme)
	}

	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidTarget)
	}

	return u, nil
}

// Layout is the directory tree of one campaign.
type Layout struct {
	Dir   string
	Stamp string
}

// New returns the layout <base>/<host>/<path-dashed>/<stamp>-<device>.
func New(base string, target *url.URL, device string, now time.Time) Layout {
	stamp := Timestamp(now)
	pathDir := strings.ReplaceAll(strings.TrimPrefix(target.Path, "/"), "/", "-")

	return Layout{
		Dir:   filepath.Join(base, target.Hostname(), pathDir, stamp+"-"+device),
		Stamp: stamp,
	}
}

// Timestamp formats t the way report names embed it.
func Timestamp(t time.Time) string {
	return t.UTC().Format(stampLayout)
}

// RunPrefix is the Lighthouse --output-path for run index.
func (l Layout) RunPrefix(index int) string {
	return filepath.Join(l.Dir, fmt.Sprintf("%s-%d", l.Stamp, index))
}

// SummaryPath is the summary file of the campaign.
func (l Layout) SummaryPath() string {
	return filepath.Join(l.Dir, SummaryFile)
}

// Ensure creates the campaign directory.
func (l Layout) Ensure(fs afero.Fs) error {
	if err := fs.MkdirAll(l.Dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", l.Dir, err)
	}

	return nil
}
