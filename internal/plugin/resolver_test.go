package plugin

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	root := filepath.Join("/", "home", "user", ".cache", "vis-plug")

	tests := []struct {
		name          string
		spec          Spec
		expected      *Plugin
		expectedError bool
	}{
		{
			name: "shorthand with all defaults",
			spec: Spec{Source: "erf/vis-highlight"},
			expected: &Plugin{
				URL:      "https://github.com/erf/vis-highlight",
				ShortURL: "erf/vis-highlight",
				Name:     "vis-highlight",
				Path:     filepath.Join(root, "plugins", "vis-highlight"),
				File:     DefaultFile,
				Category: CategoryPlugin,
			},
		},
		{
			name: "full URL with branch and alias",
			spec: Spec{
				Source: "https://github.com/erf/vis-cursors.git",
				Branch: "dev",
				Alias:  "cursors",
			},
			expected: &Plugin{
				URL:      "https://github.com/erf/vis-cursors.git",
				ShortURL: "erf/vis-cursors.git",
				Name:     "vis-cursors",
				Path:     filepath.Join(root, "plugins", "vis-cursors"),
				File:     DefaultFile,
				Alias:    "cursors",
				Branch:   "dev",
				Category: CategoryPlugin,
			},
		},
		{
			name: "theme resolves under themes dir",
			spec: Spec{Source: "samuelljc/vis-default-16", Theme: true},
			expected: &Plugin{
				URL:      "https://github.com/samuelljc/vis-default-16",
				ShortURL: "samuelljc/vis-default-16",
				Name:     "vis-default-16",
				Path:     filepath.Join(root, "themes", "vis-default-16"),
				File:     DefaultFile,
				Category: CategoryTheme,
			},
		},
		{
			name: "explicit file overrides the default entry point",
			spec: Spec{Source: "erf/vis-ctags", File: "ctags"},
			expected: &Plugin{
				URL:      "https://github.com/erf/vis-ctags",
				ShortURL: "erf/vis-ctags",
				Name:     "vis-ctags",
				Path:     filepath.Join(root, "plugins", "vis-ctags"),
				File:     "ctags",
				Category: CategoryPlugin,
			},
		},
		{
			name:          "empty source",
			spec:          Spec{},
			expectedError: true,
		},
		{
			name:          "no derivable name",
			spec:          Spec{Source: "https://github.com/.."},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Resolve(tt.spec, root)
			if tt.expectedError {
				require.Error(t, err)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

// Resolve is a pure transformation; resolving twice must give identical
// records and must never touch the filesystem.
func TestResolveDeterministic(t *testing.T) {
	spec := Spec{Source: "erf/vis-highlight", Branch: "main"}

	first, err := Resolve(spec, "/tmp/root")
	require.NoError(t, err)
	second, err := Resolve(spec, "/tmp/root")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}
