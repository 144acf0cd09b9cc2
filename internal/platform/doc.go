// Package platform wraps the filesystem operations bush performs through an
// afero.Fs so the engine can run against the real disk or an in-memory
// filesystem. Every failure is reported as a *FilesystemError carrying the
// operation and path. It also keeps a repository's .gitignore entries.
package platform
