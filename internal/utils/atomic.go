package utils

import (
	"io"
	"os"
	"path/filepath"
)

// WriteFileAtomic streams write into a temporary file next to filePath and
// renames it into place once write and close succeeded. On any failure the
// temporary file is removed and filePath is left untouched.
func WriteFileAtomic(filePath string, write func(w io.Writer) error) error {
	dir := filepath.Dir(filePath)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return &IOError{Op: "create", Path: filePath, Err: err}
	}
	tmpPath := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &IOError{Op: "close", Path: filePath, Err: err}
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return &IOError{Op: "rename", Path: filePath, Err: err}
	}

	return nil
}
