package plugin

import (
	"path/filepath"
)

// Resolve turns a raw spec into a concrete Plugin record rooted at root.
// It is a pure transformation: URL normalization, name derivation, path
// computation, and defaulting. No disk or network access happens here, and
// resolving the same spec twice yields structurally identical records.
//
// Two specs resolving to the same name and category collide on disk. That
// is a configuration error the resolver does not detect; the registry's
// Collisions method reports it for diagnostics.
func Resolve(spec Spec, root string) (*Plugin, error) {
	if spec.Source == "" {
		return nil, NewError(ErrCodeInvalidSource, "plugin source is empty")
	}

	canonical := NormalizeURL(spec.Source)

	name, err := DeriveName(canonical)
	if err != nil {
		return nil, NewResolveError(spec.Source, err)
	}

	file := spec.File
	if file == "" {
		file = DefaultFile
	}

	category := spec.Category()

	return &Plugin{
		URL:      canonical,
		ShortURL: ShortenURL(spec.Source),
		Name:     name,
		Path:     filepath.Join(root, category.Dir(), name),
		File:     file,
		Alias:    spec.Alias,
		Branch:   spec.Branch,
		Commit:   spec.Commit,
		Category: category,
	}, nil
}
