// Package host is the boundary between the plugin manager core and the
// application that actually runs plugin code. The core resolves and syncs
// repositories; turning an installed plugin's entry point into a live
// capability is the host's job, expressed here as the Loader interface.
package host

import (
	"context"
	"log/slog"

	"github.com/kornellapacz/vis-plug/internal/plugin"
)

// Loader turns an installed plugin's entry point into a loaded handle.
// Implementations are owned by the host application.
type Loader interface {
	Load(ctx context.Context, p *plugin.Plugin) (any, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, p *plugin.Plugin) (any, error)

// Load calls the underlying function.
func (f LoaderFunc) Load(ctx context.Context, p *plugin.Plugin) (any, error) {
	return f(ctx, p)
}

// Table maps a plugin alias to its loaded handle.
type Table map[string]any

// Init is called once at host startup. It resolves the supplied specs into
// the manager's registry, optionally installs everything silently, and
// loads every installed, non-theme plugin that has an alias. Load failures
// skip the entry and are logged; they never abort startup.
func Init(ctx context.Context, mgr *plugin.Manager, specs []plugin.Spec, autoInstall bool, loader Loader, logger *slog.Logger) (Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	mgr.Registry().Init(specs)

	if autoInstall {
		if _, err := mgr.InstallAll(ctx, true); err != nil {
			return nil, err
		}
	}

	table := make(Table)
	for _, p := range mgr.Registry().Plugins() {
		if p.Category == plugin.CategoryTheme || p.Alias == "" {
			continue
		}
		if !p.Installed() {
			logger.Warn("skipping plugin that is not installed", "plugin", p.Name)
			continue
		}

		handle, err := loader.Load(ctx, p)
		if err != nil {
			logger.Warn("failed to load plugin", "plugin", p.Name, "error", err)
			continue
		}
		table[p.Alias] = handle
	}

	return table, nil
}
