// Package runtime is the boundary between bush and the package manager. It
// creates directories and runs manager command lines in an explicit working
// directory through an embedded POSIX shell interpreter.
package runtime
