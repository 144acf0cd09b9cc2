package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

const (
	dirMode  os.FileMode = 0755
	fileMode os.FileMode = 0644
)

// FilesystemError reports a failed directory or file operation.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

func wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &FilesystemError{Op: op, Path: path, Err: err}
}

// EnsureDir creates dir and any missing parents. An existing directory is not an error.
func EnsureDir(fsys afero.Fs, dir string) error {
	return wrap("creating directory", dir, fsys.MkdirAll(dir, dirMode))
}

// Exists reports whether path exists. Errors other than "not exist" are returned.
func Exists(fsys afero.Fs, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, wrap("inspecting", path, err)
}

// ReadFile reads the whole file at path.
func ReadFile(fsys afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, wrap("reading", path, err)
	}
	return data, nil
}

// WriteFile replaces the contents of path.
func WriteFile(fsys afero.Fs, path string, data []byte) error {
	return wrap("writing", path, afero.WriteFile(fsys, path, data, fileMode))
}
