package workspace

import (
	"github.com/bushkit/bush/internal/bushfile"
)

// Repository indexes every workspace of a document in declaration order.
type Repository struct {
	Config     *bushfile.Config
	workspaces []*Workspace
	byName     map[string]*Workspace
}

// NewRepository builds all workspace trees of cfg.
func NewRepository(cfg *bushfile.Config) (*Repository, error) {
	r := &Repository{
		Config: cfg,
		byName: make(map[string]*Workspace),
	}
	for _, name := range cfg.Workspaces.Keys() {
		ws, err := New(cfg, name)
		if err != nil {
			return nil, err
		}
		r.workspaces = append(r.workspaces, ws)
		r.byName[name] = ws
	}
	return r, nil
}

// Workspaces returns the workspaces in declaration order.
func (r *Repository) Workspaces() []*Workspace { return r.workspaces }

// Workspace returns the workspace called name, or nil.
func (r *Repository) Workspace(name string) *Workspace { return r.byName[name] }
