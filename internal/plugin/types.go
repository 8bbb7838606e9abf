package plugin

import (
	"fmt"
	"os"
	"path/filepath"
)

// Category partitions plugins on disk. Regular plugins are cloned under
// plugins/, themes under themes/. Themes are never loaded as code by the host.
type Category string

const (
	CategoryPlugin Category = "plugin"
	CategoryTheme  Category = "theme"
)

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the Category is a valid enum value.
func (c Category) IsValid() bool {
	return c == CategoryPlugin || c == CategoryTheme
}

// Dir returns the directory name a category's working trees live under.
func (c Category) Dir() string {
	return string(c) + "s"
}

// DefaultFile is the conventional entry-point name used when a spec
// does not name one.
const DefaultFile = "init"

// Spec is a caller-supplied plugin source descriptor. It is immutable once
// passed to the registry; resolution produces a Plugin from it.
type Spec struct {
	// Source is a repository location: a full URL, a host-relative URL,
	// an SSH shorthand, or a bare owner/repo shorthand.
	Source string `mapstructure:"source" yaml:"source" validate:"required"`

	// File is the entry-point name within the repository (default "init").
	File string `mapstructure:"file" yaml:"file,omitempty"`

	// Alias is the key under which the loaded plugin is exposed to the host.
	Alias string `mapstructure:"alias" yaml:"alias,omitempty"`

	// Branch pins the plugin to a branch.
	Branch string `mapstructure:"branch" yaml:"branch,omitempty"`

	// Commit pins the plugin to a commit; takes precedence over Branch.
	Commit string `mapstructure:"commit" yaml:"commit,omitempty"`

	// Theme stores the plugin under themes/ and excludes it from host loading.
	Theme bool `mapstructure:"theme" yaml:"theme,omitempty"`
}

// Category returns the storage category the spec resolves into.
func (s Spec) Category() Category {
	if s.Theme {
		return CategoryTheme
	}
	return CategoryPlugin
}

// Plugin is a resolved plugin record. It is produced by Resolve and mutated
// only by an explicit re-pin; everything else treats it as read-only.
type Plugin struct {
	// URL is the canonical, clone-able repository URL.
	URL string `yaml:"url"`

	// ShortURL is the display form with protocol (and the default host)
	// stripped according to source classification.
	ShortURL string `yaml:"short_url"`

	// Name is derived from the URL: the last path segment with any trailing
	// extension removed. Deterministic for a given URL.
	Name string `yaml:"name"`

	// Path is the local working tree: root/<category dir>/<name>.
	Path string `yaml:"path"`

	// File is the entry-point name within the repository.
	File string `yaml:"file"`

	// Alias is the host-facing key, empty if the plugin is not exposed.
	Alias string `yaml:"alias,omitempty"`

	// Branch is the pinned branch, if any.
	Branch string `yaml:"branch,omitempty"`

	// Commit is the pinned commit; overrides Branch for checkouts.
	Commit string `yaml:"commit,omitempty"`

	// Category is where the working tree is stored.
	Category Category `yaml:"category"`
}

// Installed reports whether the plugin's working tree exists on disk.
// The predicate is re-evaluated on every call, never cached.
func (p *Plugin) Installed() bool {
	info, err := os.Stat(p.Path)
	return err == nil && info.IsDir()
}

// Ref returns the pinned ref to check out: the commit if set, else the
// branch, else empty. An empty ref means no checkout is performed; a fresh
// clone stays on whatever the remote's default branch was at clone time.
func (p *Plugin) Ref() string {
	if p.Commit != "" {
		return p.Commit
	}
	return p.Branch
}

// EntryPoint returns the path of the plugin's entry-point file.
func (p *Plugin) EntryPoint() string {
	return filepath.Join(p.Path, p.File)
}

// Validate validates the Plugin fields.
func (p *Plugin) Validate() error {
	if p.URL == "" {
		return fmt.Errorf("plugin URL is required")
	}
	if p.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if p.Path == "" {
		return fmt.Errorf("plugin path is required")
	}
	if !p.Category.IsValid() {
		return fmt.Errorf("invalid plugin category: %s", p.Category)
	}
	return nil
}
