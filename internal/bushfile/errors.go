package bushfile

import (
	"fmt"
	"strings"
)

// ConfigError reports a document that cannot be loaded: unreadable or
// unparsable files, missing merge-with fragments, inheritance cycles, schema
// violations and structurally invalid trees.
type ConfigError struct {
	Path   string
	Issues []string
	Err    error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "config %s", e.Path)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if len(e.Issues) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Issues, "; "))
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }

func configErr(path string, err error) error {
	return &ConfigError{Path: path, Err: err}
}
