// Package workspace models the address space of a repository: one tree per
// workspace, indexed by dot-joined address, together with the naming rules
// that turn an address into a package name and a directory.
package workspace
