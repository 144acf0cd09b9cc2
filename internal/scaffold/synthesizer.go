package scaffold

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bushkit/bush/internal/branding"
	"github.com/bushkit/bush/internal/bushfile"
	"github.com/bushkit/bush/internal/linker"
	"github.com/bushkit/bush/internal/manifest"
	"github.com/bushkit/bush/internal/matcher"
	"github.com/bushkit/bush/internal/runtime"
	"github.com/bushkit/bush/internal/workspace"
	"github.com/spf13/afero"
)

// Options tune a Synthesizer.
type Options struct {
	// Root is the repository root directory.
	Root string
	// Prune clears the dependency buckets before rules are applied, so
	// entries of removed rules disappear.
	Prune bool
	// Source names the document in errors.
	Source string
}

// Result describes one synthesized manifest.
type Result struct {
	Path         string
	Name         string
	Created      bool
	Dependencies int
}

// Synthesizer writes the manifests of one repository.
type Synthesizer struct {
	fs      afero.Fs
	repo    *workspace.Repository
	exec    runtime.Executor
	matcher *matcher.Matcher
	linker  *linker.Linker
	opts    Options

	template *manifest.Object
}

// New returns a Synthesizer for repo.
func New(fsys afero.Fs, repo *workspace.Repository, exec runtime.Executor, opts Options) *Synthesizer {
	m := matcher.New()
	return &Synthesizer{
		fs:      fsys,
		repo:    repo,
		exec:    exec,
		matcher: m,
		linker:  linker.New(repo, m, opts.Source),
		opts:    opts,
	}
}

// Template returns the parsed manifest template. It is parsed once per
// Synthesizer; callers get a copy.
func (s *Synthesizer) Template() (*manifest.Object, error) {
	if s.template == nil {
		raw := s.repo.Config.TemplateOrDefault()
		obj, err := manifest.Parse([]byte(raw))
		if err != nil {
			return nil, &TemplateError{Template: raw, Err: err}
		}
		s.template = obj
	}
	return s.template.Clone(), nil
}

// ManifestPath returns the manifest location of addr in ws.
func (s *Synthesizer) ManifestPath(ws *workspace.Workspace, addr string) string {
	return filepath.Join(ws.Dir(s.opts.Root, addr), branding.ManifestFile())
}

// RootManifestPath returns the location of the root manifest.
func (s *Synthesizer) RootManifestPath() string {
	return filepath.Join(s.opts.Root, branding.ManifestFile())
}

// Package synthesizes the manifest of the leaf at addr.
func (s *Synthesizer) Package(ctx context.Context, ws *workspace.Workspace, addr string) (*Result, error) {
	name, ok := ws.ScopedName(addr)
	if !ok {
		return nil, fmt.Errorf("%s@%s is not a named package", ws.Name, addr)
	}

	dir := ws.Dir(s.opts.Root, addr)
	if err := s.exec.EnsureDir(ctx, dir); err != nil {
		return nil, err
	}

	acc := manifest.NewAccessor(s.fs, s.ManifestPath(ws, addr))
	created, err := s.materialize(acc, name)
	if err != nil {
		return nil, err
	}

	externals, err := s.matcher.Externals(s.repo.Config, ws.Config, addr)
	if err != nil {
		return nil, err
	}
	links, err := s.linker.Resolve(ws, addr)
	if err != nil {
		return nil, err
	}
	for _, l := range links {
		externals.Put(l)
	}

	err = acc.Modify(func(o *manifest.Object) error {
		if s.opts.Prune {
			manifest.ClearBuckets(o)
		}
		o.SetFirst(manifest.FieldName, name)
		placeAll(o, externals.List(), true)
		manifest.SortBuckets(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := acc.Save(); err != nil {
		return nil, err
	}

	return &Result{Path: acc.Path(), Name: name, Created: created, Dependencies: externals.Len()}, nil
}

// Root synthesizes the repository's root manifest: its name, scripts and
// external references. Peer dependencies of the root are not mirrored.
func (s *Synthesizer) Root(ctx context.Context) (*Result, error) {
	cfg := s.repo.Config
	if err := s.exec.EnsureDir(ctx, s.opts.Root); err != nil {
		return nil, err
	}

	name := bushfile.UnescapeName(cfg.Name)
	acc := manifest.NewAccessor(s.fs, s.RootManifestPath())
	created, err := s.materialize(acc, name)
	if err != nil {
		return nil, err
	}

	deps := &matcher.Set{}
	matcher.ResolveAll(cfg, &cfg.Root.References, deps)

	err = acc.Modify(func(o *manifest.Object) error {
		if name != "" {
			o.SetFirst(manifest.FieldName, name)
		}
		setScripts(o, &cfg.Root.Scripts)
		if s.opts.Prune {
			manifest.ClearBuckets(o)
		}
		placeAll(o, deps.List(), false)
		manifest.SortBuckets(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := acc.Save(); err != nil {
		return nil, err
	}

	return &Result{Path: acc.Path(), Name: name, Created: created, Dependencies: deps.Len()}, nil
}

// Add installs specifier into the package at dir through the package
// manager, then re-reads the manifest the manager rewrote and sorts its
// buckets.
func (s *Synthesizer) Add(ctx context.Context, dir, specifier string, mode runtime.SaveMode) error {
	acc := manifest.NewAccessor(s.fs, filepath.Join(dir, branding.ManifestFile()))
	if _, err := acc.Get(); err != nil {
		return fmt.Errorf("package at %s has no manifest, run bush first: %w", dir, err)
	}

	err := s.exec.Invoke(ctx, runtime.Invocation{
		Dir:       dir,
		Manager:   s.repo.Config.ManagerOrDefault(),
		Action:    runtime.ActionAdd,
		Specifier: specifier,
		Save:      mode,
	})
	if err != nil {
		return err
	}

	acc.Invalidate()
	if err := acc.Modify(func(o *manifest.Object) error {
		manifest.SortBuckets(o)
		return nil
	}); err != nil {
		return err
	}
	return acc.Save()
}

// materialize writes the template with name to a missing manifest and
// reports whether it did.
func (s *Synthesizer) materialize(acc *manifest.Accessor, name string) (bool, error) {
	exists, err := acc.Exists()
	if err != nil || exists {
		return false, err
	}
	obj, err := s.Template()
	if err != nil {
		return false, err
	}
	if name != "" {
		obj.SetFirst(manifest.FieldName, name)
	}
	if err := acc.Create(obj); err != nil {
		return false, err
	}
	return true, nil
}

func placeAll(o *manifest.Object, deps []matcher.Dependency, mirrorPeer bool) {
	for _, d := range deps {
		manifest.Place(o, d.Name, d.Version, d.Dev, d.Peer, mirrorPeer)
	}
}

// setScripts replaces the scripts field wholesale, removing it when the
// document declares none.
func setScripts(o *manifest.Object, scripts *bushfile.Ordered[string]) {
	if scripts.Len() == 0 {
		o.Delete(manifest.FieldScripts)
		return
	}
	obj := manifest.NewObject()
	for _, k := range scripts.Keys() {
		v, _ := scripts.Get(k)
		obj.Set(k, v)
	}
	o.Set(manifest.FieldScripts, obj)
}
