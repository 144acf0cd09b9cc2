package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/bushkit/bush/internal/platform"
	"github.com/spf13/afero"
)

// Accessor is the read-modify-write handle for one manifest file. The file is
// parsed on first access and the parsed object is reused until Save or
// Invalidate. Accessors for the same path do not share state.
type Accessor struct {
	fs      afero.Fs
	path    string
	content *Object
}

// NewAccessor returns an accessor for the manifest at path.
func NewAccessor(fsys afero.Fs, path string) *Accessor {
	return &Accessor{fs: fsys, path: path}
}

// Path returns the manifest path.
func (a *Accessor) Path() string { return a.path }

// Dir returns the directory holding the manifest.
func (a *Accessor) Dir() string { return filepath.Dir(a.path) }

// Exists reports whether the manifest file is present.
func (a *Accessor) Exists() (bool, error) {
	return platform.Exists(a.fs, a.path)
}

// Get returns the parsed manifest, reading it on first use.
func (a *Accessor) Get() (*Object, error) {
	if a.content != nil {
		return a.content, nil
	}
	data, err := platform.ReadFile(a.fs, a.path)
	if err != nil {
		return nil, err
	}
	obj, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", a.path, err)
	}
	a.content = obj
	return obj, nil
}

// Modify applies fn to the cached manifest.
func (a *Accessor) Modify(fn func(*Object) error) error {
	obj, err := a.Get()
	if err != nil {
		return err
	}
	return fn(obj)
}

// Save writes the in-memory manifest back to disk and clears the cache.
func (a *Accessor) Save() error {
	obj, err := a.Get()
	if err != nil {
		return err
	}
	if err := a.write(obj); err != nil {
		return err
	}
	a.Invalidate()
	return nil
}

// Create writes obj as the manifest, replacing any file at the path, and
// clears the cache.
func (a *Accessor) Create(obj *Object) error {
	if err := a.write(obj); err != nil {
		return err
	}
	a.Invalidate()
	return nil
}

// Invalidate drops the cached manifest so the next access re-reads the file.
func (a *Accessor) Invalidate() { a.content = nil }

func (a *Accessor) write(obj *Object) error {
	data, err := Marshal(obj)
	if err != nil {
		return fmt.Errorf("serializing manifest %s: %w", a.path, err)
	}
	return platform.WriteFile(a.fs, a.path, data)
}
