// Package manifest reads and writes generated package manifests
// (package.json). Objects keep their key order so that fields bush does not
// manage survive regeneration verbatim, and an Accessor gives each file a
// parse-once, clear-on-save cache.
package manifest
