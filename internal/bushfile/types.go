package bushfile

import (
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Defaults applied when the document leaves a field empty.
const (
	DefaultManager   = "pnpm"
	DefaultProtocol  = "workspace:"
	DefaultTemplate  = "{}"
	DefaultSeparator = "-"
	DefaultVersion   = "latest"
)

// Config is the merged repository document.
type Config struct {
	Name          string              `yaml:"name"`
	Manager       string              `yaml:"manager"`
	Protocol      string              `yaml:"protocol"`
	Template      string              `yaml:"template"`
	Scope         string              `yaml:"scope"`
	Separator     string              `yaml:"separator"`
	StartLocation string              `yaml:"start-location"`
	Root          RootNode            `yaml:"root"`
	Workspaces    Ordered[*Workspace] `yaml:"workspaces"`
	Packages      Ordered[Ref]        `yaml:"packages"`
	References    Ordered[Ref]        `yaml:"references"`
}

// RootNode configures the repository root package.
type RootNode struct {
	Scripts    Ordered[string] `yaml:"scripts"`
	References Ordered[Ref]    `yaml:"references"`
}

// Workspace is one top-level directory of packages.
type Workspace struct {
	Tree       PackageTree            `yaml:"tree"`
	Names      Ordered[string]        `yaml:"names"`
	References Ordered[Ordered[Ref]]  `yaml:"references"`
	Attributes Ordered[AttributeRule] `yaml:"attributes"`
	Scope      string                 `yaml:"scope"`
	Prefix     string                 `yaml:"prefix"`
	Flat       Flag                   `yaml:"flat"`
	Separator  string                 `yaml:"separator"`
}

// AttributeRule bundles external dependencies applied to every address its
// pattern (the mapping key) matches.
type AttributeRule struct {
	References Ordered[Ref] `yaml:"references"`
}

// Ref declares a dependency. For intra-repo links only the flags are used.
type Ref struct {
	Version  string `yaml:"version"`
	IsDev    Flag   `yaml:"is-dev"`
	SavePeer Flag   `yaml:"save-peer"`
}

// ManagerOrDefault returns the package manager command.
func (c *Config) ManagerOrDefault() string {
	if c.Manager == "" {
		return DefaultManager
	}
	return c.Manager
}

// ProtocolOrDefault returns the link protocol.
func (c *Config) ProtocolOrDefault() string {
	if c.Protocol == "" {
		return DefaultProtocol
	}
	return c.Protocol
}

// TemplateOrDefault returns the serialized default manifest.
func (c *Config) TemplateOrDefault() string {
	if strings.TrimSpace(c.Template) == "" {
		return DefaultTemplate
	}
	return c.Template
}

// Default returns the global default for an external dependency. The packages
// registry is consulted before references.
func (c *Config) Default(name string) (Ref, bool) {
	if ref, ok := c.Packages.Get(name); ok {
		return ref, true
	}
	return c.References.Get(name)
}

// Workspace returns the named workspace, or nil.
func (c *Config) Workspace(name string) *Workspace {
	ws, _ := c.Workspaces.Get(name)
	return ws
}

// UnescapeName turns the YAML-safe "\@" spelling of a package name into "@".
func UnescapeName(name string) string {
	return strings.Replace(name, `\@`, "@", 1)
}

// Ordered is a string-keyed mapping that remembers declaration order.
type Ordered[V any] struct {
	keys   []string
	values map[string]V
}

// Keys returns the keys in declaration order.
func (o *Ordered[V]) Keys() []string { return o.keys }

// Len returns the number of entries.
func (o *Ordered[V]) Len() int { return len(o.keys) }

// Get returns the value for key and whether the key is present.
func (o *Ordered[V]) Get(key string) (V, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present, regardless of its value.
func (o *Ordered[V]) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Set stores value under key, appending the key when it is new.
func (o *Ordered[V]) Set(key string, value V) {
	if o.values == nil {
		o.values = make(map[string]V)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// UnmarshalYAML decodes a mapping node, keeping key order.
func (o *Ordered[V]) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	o.keys = nil
	o.values = make(map[string]V, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if o.Has(key) {
			return fmt.Errorf("line %d: duplicate key %q", node.Content[i].Line, key)
		}
		var v V
		if err := node.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		o.Set(key, v)
	}
	return nil
}

// Flag is a tri-state yes/no value. An unset flag defers to the next level of
// configuration.
type Flag struct {
	set   bool
	value bool
}

// NewFlag returns a set flag.
func NewFlag(v bool) Flag { return Flag{set: true, value: v} }

// IsSet reports whether the document specified the flag.
func (f Flag) IsSet() bool { return f.set }

// Bool returns the flag value; unset flags are false.
func (f Flag) Bool() bool { return f.set && f.value }

// Or returns f when set, otherwise fallback.
func (f Flag) Or(fallback Flag) Flag {
	if f.set {
		return f
	}
	return fallback
}

// UnmarshalYAML accepts booleans and yes/no style strings.
func (f *Flag) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a yes/no value", node.Line)
	}
	v, ok, err := ParseFlag(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*f = Flag{set: ok, value: v}
	return nil
}

// ParseFlag interprets s as a yes/no value. An empty string is reported as
// not set.
func ParseFlag(s string) (value, set bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return false, false, nil
	case "y", "yes", "on":
		return true, true, nil
	case "n", "no", "off":
		return false, true, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, false, fmt.Errorf("invalid yes/no value %q", s)
	}
	return b, true, nil
}

// PackageTree is the recursive alias mapping of a workspace. A childless tree
// is the leaf marker.
type PackageTree struct {
	aliases  []string
	children map[string]*PackageTree
}

// Aliases returns child aliases in declaration order.
func (t *PackageTree) Aliases() []string { return t.aliases }

// Child returns the subtree under alias, or nil.
func (t *PackageTree) Child(alias string) *PackageTree { return t.children[alias] }

// Len returns the number of direct children.
func (t *PackageTree) Len() int { return len(t.aliases) }

// Add appends a child under alias and returns it. Adding an existing alias
// returns the existing child.
func (t *PackageTree) Add(alias string) *PackageTree {
	if c, ok := t.children[alias]; ok {
		return c
	}
	if t.children == nil {
		t.children = make(map[string]*PackageTree)
	}
	c := &PackageTree{}
	t.aliases = append(t.aliases, alias)
	t.children[alias] = c
	return c
}

// UnmarshalYAML decodes nested mappings. Null or empty values are leaves.
func (t *PackageTree) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	if isEmptyNode(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: tree node must be a mapping or empty", node.Line)
	}
	t.aliases = nil
	t.children = nil
	for i := 0; i+1 < len(node.Content); i += 2 {
		alias := node.Content[i].Value
		if err := ValidateAlias(alias); err != nil {
			return fmt.Errorf("line %d: %w", node.Content[i].Line, err)
		}
		if _, dup := t.children[alias]; dup {
			return fmt.Errorf("line %d: duplicate alias %q", node.Content[i].Line, alias)
		}
		if err := t.Add(alias).UnmarshalYAML(node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAlias rejects aliases that would break address uniqueness.
func ValidateAlias(alias string) error {
	switch {
	case strings.TrimSpace(alias) == "":
		return fmt.Errorf("empty tree alias")
	case strings.Contains(alias, "."):
		return fmt.Errorf("tree alias %q must not contain \".\"", alias)
	case strings.Contains(alias, "@"):
		return fmt.Errorf("tree alias %q must not contain \"@\"", alias)
	}
	return nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

func isEmptyNode(node *yaml.Node) bool {
	if node == nil || node.Kind == 0 {
		return true
	}
	return node.Kind == yaml.ScalarNode && (node.ShortTag() == "!!null" || node.Value == "")
}
