package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/bushkit/bush/internal/branding"
	"github.com/bushkit/bush/internal/bushfile"
	"github.com/bushkit/bush/internal/platform"
	"github.com/spf13/afero"
)

//go:embed scaffolds/*.tmpl
var scaffoldFS embed.FS

const documentTemplate = "scaffolds/bush.yaml.tmpl"

// InitData holds the variables of a starter document.
type InitData struct {
	CLIName    string
	Name       string
	Manager    string
	Scope      string
	Workspaces []string
}

// NewInitData returns InitData with defaults filled in.
func NewInitData(name, manager, scope string, workspaces []string) *InitData {
	d := &InitData{
		CLIName:    branding.CLIName(),
		Name:       name,
		Manager:    manager,
		Scope:      scope,
		Workspaces: workspaces,
	}
	if d.Manager == "" {
		d.Manager = bushfile.DefaultManager
	}
	if len(d.Workspaces) == 0 {
		d.Workspaces = []string{"packages"}
	}
	return d
}

// RenderDocument executes the starter document template and checks that
// the result loads.
func RenderDocument(data *InitData) ([]byte, error) {
	tmplBytes, err := scaffoldFS.ReadFile(documentTemplate)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", documentTemplate, err)
	}
	tmpl, err := template.New("bush.yaml").Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", documentTemplate, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", documentTemplate, err)
	}
	if _, err := bushfile.Parse(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("generated document is invalid: %w", err)
	}
	return buf.Bytes(), nil
}

// InitDocument writes a starter document to path. An existing file is kept
// unless force is set.
func InitDocument(fsys afero.Fs, path string, data *InitData, force bool) error {
	exists, err := platform.Exists(fsys, path)
	if err != nil {
		return err
	}
	if exists && !force {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	}

	out, err := RenderDocument(data)
	if err != nil {
		return err
	}
	return platform.WriteFile(fsys, path, out)
}
