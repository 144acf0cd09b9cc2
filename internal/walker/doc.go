// Package walker drives a scaffolding run. It synthesizes the root manifest,
// walks every workspace tree depth-first in declaration order, synthesizes a
// manifest for each leaf, optionally annotates unnamed childless addresses
// as placeholders, and finally runs the package manager's install step.
package walker
