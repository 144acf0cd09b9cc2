// Package doctor inspects a repository document without touching the
// filesystem: rule patterns, external version specifiers, link targets,
// the manifest template, placeholder gaps and the package manager.
package doctor
