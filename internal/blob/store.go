// Package blob locates and writes the on-disk artifacts that hold persisted
// editor state. Each artifact lives in its own directory under a config root.
package blob

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppDirName is the directory created under the user config dir.
	AppDirName = "leapedit"

	// ArtifactFile is the file name used inside every artifact directory.
	ArtifactFile = "data.bin.zst"

	dirPerm  = 0o750
	filePerm = 0o600
)

var (
	// ErrStorageUnavailable is returned when an artifact directory or file
	// cannot be created, read or written. It is never returned for a file that
	// simply does not exist yet.
	ErrStorageUnavailable = errors.New("config storage unavailable")

	// ErrInvalidName is returned for artifact names that would escape the root.
	ErrInvalidName = errors.New("invalid artifact name")
)

// StorageError describes a failed storage operation on a named artifact.
type StorageError struct {
	Name string
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *StorageError) Unwrap() []error {
	return []error{ErrStorageUnavailable, e.Err}
}

// Store resolves artifact paths under a single config root.
type Store struct {
	root   string
	logger *slog.Logger
}

// DefaultRoot returns the per-user config root, e.g. ~/.config/leapedit.
func DefaultRoot() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", &StorageError{Name: AppDirName, Op: "locate", Err: err}
	}
	return filepath.Join(base, AppDirName), nil
}

// NewStore creates a store rooted at root. A nil logger discards output.
func NewStore(root string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{root: filepath.Clean(root), logger: logger}
}

// Root returns the config root directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns the artifact file path for name, creating the artifact
// directory if needed. The file itself is never created here.
func (s *Store) Path(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, name)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", &StorageError{Name: name, Op: "create directory", Err: err}
	}

	return filepath.Join(dir, ArtifactFile), nil
}

// Remove deletes the artifact file for name. A missing file is not an error.
func (s *Store) Remove(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	path := filepath.Join(s.root, name, ArtifactFile)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &StorageError{Name: name, Op: "remove", Err: err}
	}

	s.logger.Debug("removed artifact", "name", name, "path", path)
	return nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
