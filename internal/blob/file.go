package blob

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ReadFile reads an artifact file. A missing file reports found=false with a
// nil error so callers can tell first run apart from unusable storage.
func ReadFile(path string) (data []byte, found bool, err error) {
	data, err = os.ReadFile(path) //nolint:gosec // G304: path comes from Store.Path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, &StorageError{Name: filepath.Base(filepath.Dir(path)), Op: "read", Err: err}
	}
	return data, true, nil
}

// WriteFile replaces the artifact at path with data. The bytes go to a temp
// file in the same directory which is then renamed over the target, so a
// reader sees either the old content or the new content.
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	name := filepath.Base(dir)

	tmp, err := os.CreateTemp(dir, ".artifact-*.tmp")
	if err != nil {
		return &StorageError{Name: name, Op: "write", Err: err}
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			// Best-effort removal of the partially written temp file.
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return &StorageError{Name: name, Op: "write", Err: err}
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return &StorageError{Name: name, Op: "sync", Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &StorageError{Name: name, Op: "close", Err: err}
	}
	if err = os.Chmod(tmpName, filePerm); err != nil {
		return &StorageError{Name: name, Op: "chmod", Err: err}
	}
	if err = os.Rename(tmpName, path); err != nil {
		return &StorageError{Name: name, Op: "rename", Err: fmt.Errorf("replacing %s: %w", path, err)}
	}

	return nil
}
