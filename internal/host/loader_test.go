package host

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kornellapacz/vis-plug/internal/plugin"
	"github.com/kornellapacz/vis-plug/internal/plugin/git"
)

func newTestHostManager(t *testing.T) *plugin.Manager {
	t.Helper()

	registry := plugin.NewRegistry(t.TempDir(), nil)
	return plugin.NewManager(registry, plugin.WithGitOperations(git.NewMockOperations()))
}

func TestInit(t *testing.T) {
	manager := newTestHostManager(t)

	specs := []plugin.Spec{
		{Source: "erf/vis-highlight", Alias: "highlight"},
		{Source: "erf/vis-cursors", Alias: "cursors"},
		{Source: "samuelljc/vis-default-16", Alias: "theme16", Theme: true},
		{Source: "erf/vis-ctags"},
	}

	loader := LoaderFunc(func(ctx context.Context, p *plugin.Plugin) (any, error) {
		return p.EntryPoint(), nil
	})

	table, err := Init(context.Background(), manager, specs, true, loader, nil)
	require.NoError(t, err)

	// only installed, aliased, non-theme plugins get loaded
	require.Len(t, table, 2)
	assert.Contains(t, table, "highlight")
	assert.Contains(t, table, "cursors")
	assert.NotContains(t, table, "theme16")

	highlight := manager.Registry().Find("vis-highlight")
	require.NotNil(t, highlight)
	assert.Equal(t, highlight.EntryPoint(), table["highlight"])
}

func TestInitWithoutAutoInstall(t *testing.T) {
	manager := newTestHostManager(t)

	specs := []plugin.Spec{
		{Source: "erf/vis-highlight", Alias: "highlight"},
		{Source: "erf/vis-cursors", Alias: "cursors"},
	}

	// install one of the two by hand
	manager.Registry().Init(specs)
	installed := manager.Registry().Find("vis-highlight")
	require.NotNil(t, installed)
	require.NoError(t, os.MkdirAll(installed.Path, 0o755))

	loader := LoaderFunc(func(ctx context.Context, p *plugin.Plugin) (any, error) {
		return p.Name, nil
	})

	table, err := Init(context.Background(), manager, specs, false, loader, nil)
	require.NoError(t, err)

	// the not-installed plugin is skipped, not installed implicitly
	require.Len(t, table, 1)
	assert.Contains(t, table, "highlight")
}

func TestInitLoadFailureSkipsEntry(t *testing.T) {
	manager := newTestHostManager(t)

	specs := []plugin.Spec{
		{Source: "erf/vis-highlight", Alias: "highlight"},
		{Source: "erf/vis-cursors", Alias: "cursors"},
	}

	loader := LoaderFunc(func(ctx context.Context, p *plugin.Plugin) (any, error) {
		if p.Name == "vis-cursors" {
			return nil, errors.New("syntax error in entry point")
		}
		return p.Name, nil
	})

	table, err := Init(context.Background(), manager, specs, true, loader, nil)
	require.NoError(t, err)

	require.Len(t, table, 1)
	assert.Contains(t, table, "highlight")
	assert.NotContains(t, table, "cursors")
}
