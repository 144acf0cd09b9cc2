// Package scaffold synthesizes package manifests. For every leaf of a
// workspace tree it materializes package.json from the document template,
// forces the package name, and places external and intra-repo dependencies
// into the right buckets. It also handles the root manifest and generates
// starter documents for "bush init".
package scaffold
