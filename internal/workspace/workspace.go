package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bushkit/bush/internal/bushfile"
)

// Workspace binds a tree to its naming and layout rules.
type Workspace struct {
	Name   string
	Tree   *Tree
	Config *bushfile.Workspace

	scope     string
	separator string
}

// New builds the workspace called name from the repository document.
func New(cfg *bushfile.Config, name string) (*Workspace, error) {
	wc := cfg.Workspace(name)
	if wc == nil {
		return nil, fmt.Errorf("unknown workspace %q", name)
	}

	tree, err := BuildTree(&wc.Tree)
	if err != nil {
		return nil, fmt.Errorf("workspace %s: %w", name, err)
	}

	scope := firstNonEmpty(wc.Scope, cfg.Scope, name)
	separator := firstNonEmpty(wc.Separator, cfg.Separator, bushfile.DefaultSeparator)

	return &Workspace{
		Name:      name,
		Tree:      tree,
		Config:    wc,
		scope:     NormalizeScope(scope),
		separator: separator,
	}, nil
}

// Scope returns the npm scope without the leading "@".
func (w *Workspace) Scope() string { return w.scope }

// IsLeaf reports whether addr carries a non-empty package name.
func (w *Workspace) IsLeaf(addr string) bool {
	name, _ := w.Config.Names.Get(addr)
	return name != ""
}

// HasName reports whether addr appears in the names table, even as an empty
// placeholder.
func (w *Workspace) HasName(addr string) bool {
	return w.Config.Names.Has(addr)
}

// PackageName returns the unscoped package name for addr: the prefix and the
// configured basename joined by "-", with "." replaced by the separator.
func (w *Workspace) PackageName(addr string) (string, bool) {
	base, _ := w.Config.Names.Get(addr)
	if base == "" {
		return "", false
	}
	name := strings.Join(nonEmpty(w.Config.Prefix, base), "-")
	return strings.ReplaceAll(name, ".", w.separator), true
}

// ScopedName returns the full package name for addr, e.g. "@acme/lib-core".
func (w *Workspace) ScopedName(addr string) (string, bool) {
	name, ok := w.PackageName(addr)
	if !ok {
		return "", false
	}
	if w.scope == "" {
		return name, true
	}
	return "@" + w.scope + "/" + name, true
}

// Dir returns the directory holding addr's package under the repository root.
func (w *Workspace) Dir(root, addr string) string {
	if w.Config.Flat.Bool() {
		if name, ok := w.PackageName(addr); ok {
			return filepath.Join(root, w.Name, name)
		}
	}
	return filepath.Join(append([]string{root, w.Name}, strings.Split(addr, Separator)...)...)
}

// Root returns the workspace directory under the repository root.
func (w *Workspace) Root(root string) string {
	return filepath.Join(root, w.Name)
}

// NormalizeScope strips an escaped or literal leading "@".
func NormalizeScope(scope string) string {
	scope = bushfile.UnescapeName(strings.TrimSpace(scope))
	return strings.TrimPrefix(scope, "@")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
