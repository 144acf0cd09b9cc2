package bushfile

import "go.yaml.in/yaml/v3"

// mergeNodes deep-merges src into dst. Mappings merge key by key; any other
// value in src replaces the value in dst. New keys keep src order.
func mergeNodes(dst, src *yaml.Node) {
	src = resolveAlias(src)
	for i := 0; i+1 < len(src.Content); i += 2 {
		key, value := src.Content[i], resolveAlias(src.Content[i+1])

		idx := indexOf(dst, key.Value)
		if idx < 0 {
			dst.Content = append(dst.Content, cloneNode(key), cloneNode(value))
			continue
		}

		existing := resolveAlias(dst.Content[idx+1])
		if existing.Kind == yaml.MappingNode && value.Kind == yaml.MappingNode {
			if existing != dst.Content[idx+1] {
				existing = cloneNode(existing)
				dst.Content[idx+1] = existing
			}
			mergeNodes(existing, value)
			continue
		}
		dst.Content[idx+1] = cloneNode(value)
	}
}

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// indexOf returns the content index of key in a mapping node, or -1.
func indexOf(mapping *yaml.Node, key string) int {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return i
		}
	}
	return -1
}

// removeKey deletes key from mapping and returns its value node.
func removeKey(mapping *yaml.Node, key string) *yaml.Node {
	idx := indexOf(mapping, key)
	if idx < 0 {
		return nil
	}
	value := mapping.Content[idx+1]
	mapping.Content = append(mapping.Content[:idx], mapping.Content[idx+2:]...)
	return value
}

// ensureMapping returns the mapping stored under key, creating or replacing
// an empty value as needed.
func ensureMapping(mapping *yaml.Node, key string) *yaml.Node {
	idx := indexOf(mapping, key)
	if idx >= 0 {
		value := resolveAlias(mapping.Content[idx+1])
		if value.Kind == yaml.MappingNode {
			return value
		}
		m := newMapping()
		mapping.Content[idx+1] = m
		return m
	}
	m := newMapping()
	mapping.Content = append(mapping.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, m)
	return m
}

func setString(mapping *yaml.Node, key, value string) {
	scalar := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value, Style: yaml.DoubleQuotedStyle}
	if idx := indexOf(mapping, key); idx >= 0 {
		mapping.Content[idx+1] = scalar
		return
	}
	mapping.Content = append(mapping.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, scalar)
}

func cloneNode(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Kind == yaml.AliasNode {
		return cloneNode(n.Alias)
	}
	if len(n.Content) > 0 {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = cloneNode(child)
		}
	}
	return &c
}
