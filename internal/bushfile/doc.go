// Package bushfile loads the declarative repository document (bush.yaml).
//
// Documents may inherit from ancestor fragments through the comma-separated
// merge-with key. Fragments are resolved relative to the file that names them,
// deep-merged in listed order and overridden by the naming file itself. The
// merged result is checked against an embedded JSON Schema and decoded into
// order-preserving types: workspaces, tree aliases, names and rule patterns are
// all visited in declaration order.
package bushfile
