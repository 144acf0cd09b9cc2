package workspace

import (
	"fmt"
	"strings"

	"github.com/bushkit/bush/internal/bushfile"
)

// Separator joins aliases into an address.
const Separator = "."

// Node is one addressed position in a workspace tree.
type Node struct {
	Alias    string
	Address  string
	Depth    int
	Children []*Node
}

// IsRoot reports whether n is the workspace root (address "").
func (n *Node) IsRoot() bool { return n.Address == "" }

// Tree is a workspace tree with an address index built once.
type Tree struct {
	Root  *Node
	index map[string]*Node
	order []string
}

// BuildTree converts a decoded package tree into nodes and indexes every
// address. Duplicate addresses and invalid aliases are rejected.
func BuildTree(pt *bushfile.PackageTree) (*Tree, error) {
	root := &Node{}
	t := &Tree{
		Root:  root,
		index: map[string]*Node{"": root},
	}
	if pt == nil {
		return t, nil
	}
	if err := t.build(t.Root, pt); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) build(parent *Node, pt *bushfile.PackageTree) error {
	for _, alias := range pt.Aliases() {
		if err := bushfile.ValidateAlias(alias); err != nil {
			return err
		}
		addr := Join(parent.Address, alias)
		if _, dup := t.index[addr]; dup {
			return fmt.Errorf("duplicate address %q", addr)
		}
		n := &Node{Alias: alias, Address: addr, Depth: parent.Depth + 1}
		parent.Children = append(parent.Children, n)
		t.index[addr] = n
		t.order = append(t.order, addr)
		if err := t.build(n, pt.Child(alias)); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the node at addr.
func (t *Tree) Lookup(addr string) (*Node, bool) {
	n, ok := t.index[addr]
	return n, ok
}

// Addresses returns every non-root address in pre-order.
func (t *Tree) Addresses() []string { return t.order }

// Join extends an address by one or more segments, dropping empty ones.
func Join(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, Separator)
}
