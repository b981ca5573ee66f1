package layout

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "https", raw: "https://example.com/blog/post"},
		{name: "http with port", raw: "http://localhost:8080/"},
		{name: "no scheme", raw: "example.com", wantErr: true},
		{name: "ftp", raw: "ftp://example.com", wantErr: true},
		{name: "no host", raw: "https:///path", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := ParseTarget(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidTarget))
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, u.Hostname())
		})
	}
}

func TestNew(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 891_000_000, time.UTC)

	target, err := ParseTarget("https://example.com/blog/my-post")
	require.NoError(t, err)

	l := New("/reports", target, "mobile", now)

	assert.Equal(t, "2024-03-09T14.05.07.891Z", l.Stamp)
	assert.Equal(t, filepath.Join("/reports", "example.com", "blog-my-post", "2024-03-09T14.05.07.891Z-mobile"), l.Dir)
	assert.Equal(t, filepath.Join(l.Dir, "2024-03-09T14.05.07.891Z-3"), l.RunPrefix(3))
	assert.Equal(t, filepath.Join(l.Dir, SummaryFile), l.SummaryPath())
}

func TestNew_RootPathCollapses(t *testing.T) {
	target, err := ParseTarget("https://example.com/")
	require.NoError(t, err)

	l := New("out", target, "desktop", time.Unix(0, 0))
	assert.Equal(t, filepath.Join("out", "example.com", "1970-01-01T00.00.00.000Z-desktop"), l.Dir)
}

func TestEnsure(t *testing.T) {
	fs := afero.NewMemMapFs()
	l := Layout{Dir: "/a/b/c"}

	require.NoError(t, l.Ensure(fs))

	ok, err := afero.DirExists(fs, "/a/b/c")
	require.NoError(t, err)
	assert.True(t, ok)
}
