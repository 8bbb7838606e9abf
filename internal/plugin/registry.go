package plugin

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Registry owns the configured root install path and the resolved plugin
// list. It is initialized once from caller-supplied specs and read by the
// orchestrators; mutation is limited to Init, Pin and Remove calls, which
// must not run concurrently with an orchestration on the same registry.
type Registry struct {
	mu      sync.RWMutex
	root    string
	specs   []Spec
	plugins []*Plugin
	logger  *slog.Logger
}

// NewRegistry creates a Registry rooted at root. A nil logger falls back
// to slog.Default().
func NewRegistry(root string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		root:   root,
		logger: logger,
	}
}

// SetRoot changes the root install directory. It only affects path
// derivation for specs resolved after the call; already-resolved plugins
// keep their paths.
func (r *Registry) SetRoot(root string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.root = root
}

// Root returns the configured root install directory.
func (r *Registry) Root() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.root
}

// CategoryDir returns the directory working trees of a category live under.
func (r *Registry) CategoryDir(c Category) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filepath.Join(r.root, c.Dir())
}

// Init stores the specs and resolves them all synchronously. Specs that
// yield no derivable name are logged and dropped from the active set;
// they never fail the call.
func (r *Registry) Init(specs []Spec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.specs = make([]Spec, len(specs))
	copy(r.specs, specs)

	r.plugins = make([]*Plugin, 0, len(specs))
	for _, spec := range specs {
		p, err := Resolve(spec, r.root)
		if err != nil {
			r.logger.Warn("skipping unresolvable plugin spec",
				"source", spec.Source, "error", err)
			continue
		}
		r.plugins = append(r.plugins, p)
	}
}

// Plugins returns the resolved plugin list. The slice is a copy; the
// records themselves are shared and must be treated as read-only outside
// the registry.
func (r *Registry) Plugins() []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plugins := make([]*Plugin, len(r.plugins))
	copy(plugins, r.plugins)
	return plugins
}

// Len returns the number of resolved plugins.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// Find looks up a resolved plugin by name. Returns nil if no plugin with
// that name exists.
func (r *Registry) Find(name string) *Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Pin re-pins a plugin to a specific ref. The ref is stored as the commit,
// which takes precedence over any configured branch for all subsequent
// checkouts. The pin lives only as long as this registry; it is not
// persisted anywhere.
func (r *Registry) Pin(name, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.plugins {
		if p.Name == name {
			p.Commit = ref
			return nil
		}
	}
	return NewNotFoundError(name)
}

// Remove deletes a plugin's working tree recursively. Removing a plugin
// that is not installed is a no-op, not an error; the returned bool
// reports whether a tree was actually deleted.
func (r *Registry) Remove(name string) (bool, error) {
	p := r.Find(name)
	if p == nil {
		return false, NewNotFoundError(name)
	}

	if !p.Installed() {
		return false, nil
	}

	if err := os.RemoveAll(p.Path); err != nil {
		return false, NewRemoveError(name, p.Path, err)
	}
	return true, nil
}

// RemoveAll deletes every resolved plugin's working tree. Failures do not
// stop the sweep; they are aggregated into the returned error. The count
// reports how many trees were actually deleted.
func (r *Registry) RemoveAll() (int, error) {
	removed := 0
	var errs []error

	for _, p := range r.Plugins() {
		if !p.Installed() {
			continue
		}
		if err := os.RemoveAll(p.Path); err != nil {
			errs = append(errs, NewRemoveError(p.Name, p.Path, err))
			continue
		}
		removed++
	}

	return removed, errors.Join(errs...)
}

// Collisions reports resolved plugins that share a working tree path.
// Same name plus same category means the same directory on disk; that is
// a configuration error the manager does not repair, only surfaces.
func (r *Registry) Collisions() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byPath := make(map[string][]string)
	for _, p := range r.plugins {
		byPath[p.Path] = append(byPath[p.Path], p.URL)
	}

	collisions := make(map[string][]string)
	for path, urls := range byPath {
		if len(urls) > 1 {
			collisions[path] = urls
		}
	}
	return collisions
}
