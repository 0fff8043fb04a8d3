// Package atomicfile writes files through a temporary sibling and a rename,
// so readers never observe a half-written glossary.
package atomicfile

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteFile replaces path with data. An existing file keeps its permission
// bits; perm applies to new files only.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.Wrap(err, "create directory")
	}
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		perm = info.Mode().Perm()
	}

	tmp := path + ".tmp"
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(tmp)
		return errors.Wrap(err, "write temp file")
	}
	if err := file.Chmod(perm); err != nil {
		file.Close()
		os.Remove(tmp)
		return errors.Wrap(err, "set temp file mode")
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "close temp file")
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "rename temp file")
	}
	return nil
}
