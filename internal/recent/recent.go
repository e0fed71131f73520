// Package recent tracks the files most recently opened in the editor.
package recent

import (
	"iter"
	"log/slog"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"github.com/leapstack-labs/leapedit/internal/blob"
	"github.com/leapstack-labs/leapedit/internal/persist"
)

// DirName is the artifact directory holding the recent-files list.
const DirName = ".recents"

// Limits supplies the maximum number of entries to keep.
type Limits interface {
	MaxRecents() int
}

// List is the persisted form: paths ordered oldest first.
type List struct {
	Paths []string `cbor:"paths"`
}

// Registry is an in-memory recent-files list bound to its artifact.
type Registry struct {
	artifact *persist.Artifact[List]
	paths    []string
	logger   *slog.Logger
}

// Read opens the recents artifact and loads it. A missing or corrupt
// artifact gives an empty list; only unusable storage is an error.
func Read(store *blob.Store, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	artifact, err := persist.Open(store, DirName,
		persist.WithDefault(func() List { return List{} }),
		persist.WithLogger[List](logger),
	)
	if err != nil {
		return nil, err
	}

	return &Registry{
		artifact: artifact,
		paths:    artifact.Load().Paths,
		logger:   logger,
	}, nil
}

// Add records path as the most recently opened file. An earlier occurrence
// is removed first, then the oldest entries are dropped until the list fits
// within limits.MaxRecents().
func (r *Registry) Add(limits Limits, path string) {
	path = normalize(path)

	r.paths = slices.DeleteFunc(r.paths, func(p string) bool {
		return normalize(p) == path
	})
	r.paths = append(r.paths, path)

	limit := max(limits.MaxRecents(), 0)
	for len(r.paths) > limit {
		r.paths = slices.Delete(r.paths, 0, 1)
	}
}

// Clear drops every entry. Call Write to persist.
func (r *Registry) Clear() {
	r.paths = nil
}

// Write persists the list. Failures are logged by the artifact.
func (r *Registry) Write() {
	r.artifact.Save(List{Paths: slices.Clone(r.paths)})
}

// Seed writes an empty list if the artifact does not exist yet.
func (r *Registry) Seed() (bool, error) {
	return r.artifact.Seed()
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.paths)
}

// Paths returns a copy of the entries, oldest first, or nil when empty.
func (r *Registry) Paths() []string {
	if len(r.paths) == 0 {
		return nil
	}
	return slices.Clone(r.paths)
}

// All yields the entries oldest first.
func (r *Registry) All() iter.Seq[string] {
	return slices.Values(slices.Clone(r.paths))
}

// Newest yields the entries most recent first, the order used for display.
func (r *Registry) Newest() iter.Seq[string] {
	snapshot := slices.Clone(r.paths)
	return func(yield func(string) bool) {
		for i := len(snapshot) - 1; i >= 0; i-- {
			if !yield(snapshot[i]) {
				return
			}
		}
	}
}

// ArtifactPath returns where the list is stored.
func (r *Registry) ArtifactPath() string {
	return r.artifact.Path()
}

// DisplayName returns the file name shown for path in the recent list.
func DisplayName(path string, logger *slog.Logger) string {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	name := filepath.Base(filepath.Clean(path))
	if path == "" || name == "." || name == string(filepath.Separator) {
		logger.Error("file has no name", "path", path)
		return "Unnamed"
	}
	if !utf8.ValidString(name) {
		logger.Error("file has an invalid name", "path", path)
		return "Invalid Name"
	}
	return name
}

func normalize(path string) string {
	if path == "" {
		return path
	}
	return filepath.Clean(path)
}
