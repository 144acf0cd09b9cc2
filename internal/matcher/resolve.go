package matcher

import (
	"github.com/bushkit/bush/internal/bushfile"
)

// Dependency is a resolved manifest entry.
type Dependency struct {
	Name    string
	Version string
	Dev     bool
	Peer    bool
}

// Set collects dependencies keyed by name. A later Put for the same name
// replaces the earlier value.
type Set struct {
	names []string
	deps  map[string]Dependency
}

// Put stores d, replacing any previous entry with the same name.
func (s *Set) Put(d Dependency) {
	if s.deps == nil {
		s.deps = make(map[string]Dependency)
	}
	if _, ok := s.deps[d.Name]; !ok {
		s.names = append(s.names, d.Name)
	}
	s.deps[d.Name] = d
}

// Get returns the dependency called name.
func (s *Set) Get(name string) (Dependency, bool) {
	d, ok := s.deps[name]
	return d, ok
}

// Len returns the number of dependencies.
func (s *Set) Len() int { return len(s.names) }

// List returns the dependencies in first-seen order.
func (s *Set) List() []Dependency {
	out := make([]Dependency, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, s.deps[n])
	}
	return out
}

// Resolve computes the effective values of an external reference: the
// rule-local setting, then the document's global default for the name, then
// "latest" and false.
func Resolve(cfg *bushfile.Config, name string, ref bushfile.Ref) Dependency {
	global, _ := cfg.Default(name)

	version := ref.Version
	if version == "" {
		version = global.Version
	}
	if version == "" {
		version = bushfile.DefaultVersion
	}

	return Dependency{
		Name:    bushfile.UnescapeName(name),
		Version: version,
		Dev:     ref.IsDev.Or(global.IsDev).Bool(),
		Peer:    ref.SavePeer.Or(global.SavePeer).Bool(),
	}
}

// ResolveAll resolves every reference of refs into s.
func ResolveAll(cfg *bushfile.Config, refs *bushfile.Ordered[bushfile.Ref], s *Set) {
	for _, name := range refs.Keys() {
		ref, _ := refs.Get(name)
		s.Put(Resolve(cfg, name, ref))
	}
}

// Externals applies every attribute rule of ws whose pattern selects address,
// in declaration order.
func (m *Matcher) Externals(cfg *bushfile.Config, ws *bushfile.Workspace, address string) (*Set, error) {
	patterns, err := m.Matching(ws.Attributes.Keys(), address)
	if err != nil {
		return nil, err
	}

	s := &Set{}
	for _, p := range patterns {
		rule, _ := ws.Attributes.Get(p)
		ResolveAll(cfg, &rule.References, s)
	}
	return s, nil
}
