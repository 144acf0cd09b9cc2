package bushfile

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bushkit/bush/internal/platform"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

// MergeKey names the inheritance directive.
const MergeKey = "merge-with"

// Document is a loaded repository document together with the top-level
// file's own node, which fill-gap mode rewrites in place.
type Document struct {
	Config *Config
	Path   string

	fs     afero.Fs
	source *yaml.Node
}

// Load reads the document at path, resolves its merge-with chain, validates
// the merged result and decodes it.
func Load(fsys afero.Fs, path string) (*Document, error) {
	path = filepath.Clean(path)

	merged, source, err := loadNode(fsys, path, nil)
	if err != nil {
		return nil, err
	}

	if err := validateNode(path, merged); err != nil {
		return nil, err
	}

	var cfg Config
	if err := merged.Decode(&cfg); err != nil {
		return nil, configErr(path, fmt.Errorf("decoding: %w", err))
	}
	for _, name := range cfg.Workspaces.Keys() {
		if ws, _ := cfg.Workspaces.Get(name); ws == nil {
			cfg.Workspaces.Set(name, &Workspace{})
		}
	}

	return &Document{
		Config: &cfg,
		Path:   path,
		fs:     fsys,
		source: source,
	}, nil
}

// Parse decodes a single document without merge-with resolution. It is used
// for documents that do not live on a filesystem.
func Parse(data []byte) (*Config, error) {
	body, _, err := parseBody("<inline>", data)
	if err != nil {
		return nil, err
	}
	removeKey(body, MergeKey)
	if err := validateNode("<inline>", body); err != nil {
		return nil, err
	}
	var cfg Config
	if err := body.Decode(&cfg); err != nil {
		return nil, configErr("<inline>", fmt.Errorf("decoding: %w", err))
	}
	return &cfg, nil
}

// loadNode returns the merged mapping for path and the untouched document
// node of path itself. stack holds the files currently being loaded.
func loadNode(fsys afero.Fs, path string, stack []string) (*yaml.Node, *yaml.Node, error) {
	for i, p := range stack {
		if p == path {
			chain := append(append([]string{}, stack[i:]...), path)
			return nil, nil, configErr(path, fmt.Errorf("cyclic %s chain: %s", MergeKey, strings.Join(chain, " -> ")))
		}
	}

	data, err := platform.ReadFile(fsys, path)
	if err != nil {
		return nil, nil, configErr(path, err)
	}

	body, source, err := parseBody(path, data)
	if err != nil {
		return nil, nil, err
	}

	parents, err := mergeWith(path, body)
	if err != nil {
		return nil, nil, err
	}

	merged := newMapping()
	for _, rel := range parents {
		parent := filepath.Join(filepath.Dir(path), rel)
		node, _, err := loadNode(fsys, parent, append(stack, path))
		if err != nil {
			return nil, nil, err
		}
		mergeNodes(merged, node)
	}
	mergeNodes(merged, body)

	return merged, source, nil
}

// parseBody parses data into a document node and returns a detached copy of
// its top-level mapping alongside the original document.
func parseBody(path string, data []byte) (*yaml.Node, *yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, configErr(path, fmt.Errorf("parsing YAML: %w", err))
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{newMapping()}}
	}

	root := resolveAlias(doc.Content[0])
	if isEmptyNode(root) {
		root = newMapping()
		doc.Content[0] = root
	}
	if root.Kind != yaml.MappingNode {
		return nil, nil, configErr(path, fmt.Errorf("top level must be a mapping"))
	}

	return cloneNode(root), &doc, nil
}

// mergeWith removes the merge-with key from body and returns its entries.
func mergeWith(path string, body *yaml.Node) ([]string, error) {
	value := removeKey(body, MergeKey)
	if value == nil || isEmptyNode(value) {
		return nil, nil
	}
	if value.Kind != yaml.ScalarNode {
		return nil, configErr(path, fmt.Errorf("%s must be a comma-separated string", MergeKey))
	}

	var parents []string
	for _, rel := range strings.Split(value.Value, ",") {
		if rel = strings.TrimSpace(rel); rel != "" {
			parents = append(parents, rel)
		}
	}
	return parents, nil
}

// AnnotateGap records an empty name placeholder for address in workspace and
// mirrors it into the top-level file's own node. Call Save to persist.
func (d *Document) AnnotateGap(workspace, address string) error {
	ws := d.Config.Workspace(workspace)
	if ws == nil {
		return fmt.Errorf("unknown workspace %q", workspace)
	}
	ws.Names.Set(address, "")

	body := d.source.Content[0]
	names := ensureMapping(ensureMapping(ensureMapping(body, "workspaces"), workspace), "names")
	setString(names, address, "")
	return nil
}

// Save re-serializes the top-level file's node to its source path.
func (d *Document) Save() error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.source); err != nil {
		return fmt.Errorf("encoding %s: %w", d.Path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding %s: %w", d.Path, err)
	}
	return platform.WriteFile(d.fs, d.Path, buf.Bytes())
}
