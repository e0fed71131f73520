package persist

import (
	"log/slog"

	"github.com/leapstack-labs/leapedit/internal/blob"
)

// Artifact is a single persisted value of type T stored under one directory
// name in a blob.Store.
type Artifact[T any] struct {
	name       string
	path       string
	newDefault func() T
	logger     *slog.Logger
}

// Option configures an Artifact.
type Option[T any] func(*Artifact[T])

// WithDefault sets the constructor for T's canonical default value.
// Without it the zero value is used.
func WithDefault[T any](fn func() T) Option[T] {
	return func(a *Artifact[T]) {
		if fn != nil {
			a.newDefault = fn
		}
	}
}

// WithLogger sets the logger used to report absorbed failures.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(a *Artifact[T]) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// Open resolves the artifact path for name, creating its directory.
// The only error is a storage fault; a missing file is fine.
func Open[T any](store *blob.Store, name string, opts ...Option[T]) (*Artifact[T], error) {
	path, err := store.Path(name)
	if err != nil {
		return nil, err
	}

	a := &Artifact[T]{
		name: name,
		path: path,
		newDefault: func() T {
			var zero T
			return zero
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Name returns the artifact directory name.
func (a *Artifact[T]) Name() string { return a.name }

// Path returns the artifact file path.
func (a *Artifact[T]) Path() string { return a.path }

// Default returns a fresh default value.
func (a *Artifact[T]) Default() T { return a.newDefault() }

// DefaultBytes returns the encoded default value.
func (a *Artifact[T]) DefaultBytes() []byte { return DefaultBytes(a.newDefault()) }

// Exists reports whether the artifact file is present on disk.
func (a *Artifact[T]) Exists() bool {
	_, found, err := blob.ReadFile(a.path)
	return err == nil && found
}

// Load reads the stored value. Absent, unreadable or corrupt artifacts all
// yield the default.
func (a *Artifact[T]) Load() T {
	data, found, err := blob.ReadFile(a.path)
	if err != nil {
		a.logger.Warn("reading config artifact, using default", "artifact", a.name, "error", err)
		return a.newDefault()
	}
	if !found {
		a.logger.Debug("config artifact absent, using default", "artifact", a.name)
		return a.newDefault()
	}

	v, err := Decode[T](data)
	if err != nil {
		a.logger.Warn("corrupt config artifact, using default", "artifact", a.name, "path", a.path, "error", err)
		return a.newDefault()
	}
	return v
}

// Save replaces the stored value with v. Failures are logged, not returned.
func (a *Artifact[T]) Save(v T) {
	data, err := Encode(v)
	if err != nil {
		a.logger.Error("encoding config artifact", "artifact", a.name, "error", err)
		return
	}
	if err := blob.WriteFile(a.path, data); err != nil {
		a.logger.Error("writing config artifact", "artifact", a.name, "error", err)
		return
	}
	a.logger.Debug("saved config artifact", "artifact", a.name, "bytes", len(data))
}

// Seed writes the default value if no artifact exists yet. It reports
// whether anything was written.
func (a *Artifact[T]) Seed() (bool, error) {
	_, found, err := blob.ReadFile(a.path)
	if err != nil {
		return false, err
	}
	if found {
		return false, nil
	}
	if err := blob.WriteFile(a.path, a.DefaultBytes()); err != nil {
		return false, err
	}
	return true, nil
}
