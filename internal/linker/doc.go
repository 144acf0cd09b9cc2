// Package linker resolves intra-repository links: the references table of a
// workspace maps address patterns to other packages of the repository, and
// each match becomes a dependency on that package using the document's link
// protocol.
package linker
