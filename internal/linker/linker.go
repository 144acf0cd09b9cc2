package linker

import (
	"fmt"
	"strings"

	"github.com/bushkit/bush/internal/bushfile"
	"github.com/bushkit/bush/internal/matcher"
	"github.com/bushkit/bush/internal/workspace"
)

// WildcardVersion is the link value written for workspace protocols.
const WildcardVersion = "workspace:*"

// Target identifies a linked package.
type Target struct {
	Workspace string
	Address   string
}

func (t Target) String() string {
	return t.Workspace + "@" + t.Address
}

// ParseTarget splits a link target of the form "workspace@address" or
// "address". A bare address refers to current.
func ParseTarget(target, current string) (Target, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return Target{}, fmt.Errorf("empty link target")
	}
	i := strings.LastIndex(target, "@")
	if i < 0 {
		return Target{Workspace: current, Address: target}, nil
	}
	t := Target{Workspace: target[:i], Address: target[i+1:]}
	if t.Workspace == "" || t.Address == "" {
		return Target{}, fmt.Errorf("invalid link target %q: expected <workspace>@<address> or <address>", target)
	}
	return t, nil
}

// Version returns the dependency value for a link to scopedName.
func Version(protocol, scopedName string) string {
	switch protocol {
	case bushfile.DefaultProtocol, WildcardVersion:
		return WildcardVersion
	default:
		return protocol + scopedName
	}
}

// Linker computes the links of a package.
type Linker struct {
	repo    *workspace.Repository
	matcher *matcher.Matcher
	source  string
}

// New returns a Linker over repo. source names the document in errors.
func New(repo *workspace.Repository, m *matcher.Matcher, source string) *Linker {
	return &Linker{repo: repo, matcher: m, source: source}
}

// Resolve returns the links of addr in ws. Every references pattern that
// selects addr contributes its targets in declaration order; a later target
// with the same package name replaces an earlier one. Links to the package
// itself are dropped.
func (l *Linker) Resolve(ws *workspace.Workspace, addr string) ([]matcher.Dependency, error) {
	self, _ := ws.ScopedName(addr)
	refs := &ws.Config.References

	patterns, err := l.matcher.Matching(refs.Keys(), addr)
	if err != nil {
		return nil, err
	}

	protocol := l.repo.Config.ProtocolOrDefault()
	set := &matcher.Set{}
	for _, p := range patterns {
		targets, _ := refs.Get(p)
		for _, raw := range targets.Keys() {
			meta, _ := targets.Get(raw)
			name, err := l.targetName(raw, ws.Name)
			if err != nil {
				return nil, err
			}
			if name == self {
				continue
			}
			set.Put(matcher.Dependency{
				Name:    name,
				Version: Version(protocol, name),
				Dev:     meta.IsDev.Bool(),
				Peer:    meta.SavePeer.Bool(),
			})
		}
	}
	return set.List(), nil
}

func (l *Linker) targetName(raw, current string) (string, error) {
	_, name, err := ResolveTarget(l.repo, raw, current)
	if err != nil {
		return "", l.configErr(current, fmt.Errorf("link %s: %w", raw, err))
	}
	return name, nil
}

// Check resolves every link target declared in any workspace and returns
// the first failure as a *bushfile.ConfigError. Patterns are not compiled.
func (l *Linker) Check() error {
	for _, ws := range l.repo.Workspaces() {
		refs := &ws.Config.References
		for _, key := range refs.Keys() {
			targets, _ := refs.Get(key)
			for _, raw := range targets.Keys() {
				if _, err := l.targetName(raw, ws.Name); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// ResolveTarget parses raw relative to the current workspace and returns
// the target with its scoped package name. The target must exist in its
// workspace tree and carry a name.
func ResolveTarget(repo *workspace.Repository, raw, current string) (Target, string, error) {
	t, err := ParseTarget(raw, current)
	if err != nil {
		return Target{}, "", err
	}
	tws := repo.Workspace(t.Workspace)
	if tws == nil {
		return t, "", fmt.Errorf("unknown workspace %q", t.Workspace)
	}
	if _, ok := tws.Tree.Lookup(t.Address); !ok {
		return t, "", fmt.Errorf("address %q is not in the %s tree", t.Address, t.Workspace)
	}
	name, ok := tws.ScopedName(t.Address)
	if !ok {
		return t, "", fmt.Errorf("%s has no package name", t)
	}
	return t, name, nil
}

func (l *Linker) configErr(ws string, err error) error {
	return &bushfile.ConfigError{Path: l.source, Err: fmt.Errorf("workspace %s: %w", ws, err)}
}
