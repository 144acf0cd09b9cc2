package platform

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// GitignoreFile is the ignore file maintained under a repository root.
const GitignoreFile = ".gitignore"

// EnsureIgnored appends every pattern missing from root/.gitignore and
// returns the ones it added. The file is created when absent and left
// untouched when nothing is missing.
func EnsureIgnored(fsys afero.Fs, root string, patterns ...string) ([]string, error) {
	path := filepath.Join(root, GitignoreFile)

	var content string
	exists, err := Exists(fsys, path)
	if err != nil {
		return nil, err
	}
	if exists {
		data, err := ReadFile(fsys, path)
		if err != nil {
			return nil, err
		}
		content = string(data)
	}

	present := make(map[string]bool)
	for _, l := range strings.Split(content, "\n") {
		present[strings.TrimSpace(l)] = true
	}

	var added []string
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" || present[p] {
			continue
		}
		present[p] = true
		added = append(added, p)
	}
	if len(added) == 0 {
		return nil, nil
	}

	var b strings.Builder
	b.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	for _, p := range added {
		b.WriteString(p)
		b.WriteString("\n")
	}
	if err := WriteFile(fsys, path, []byte(b.String())); err != nil {
		return nil, err
	}
	return added, nil
}
