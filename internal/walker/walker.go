package walker

import (
	"context"
	"fmt"

	"github.com/bushkit/bush/internal/bushfile"
	"github.com/bushkit/bush/internal/linker"
	"github.com/bushkit/bush/internal/matcher"
	"github.com/bushkit/bush/internal/runtime"
	"github.com/bushkit/bush/internal/scaffold"
	"github.com/bushkit/bush/internal/workspace"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// Options control a run.
type Options struct {
	Root      string
	FillGaps  bool
	Prune     bool
	NoInstall bool
}

// Summary counts what a run did.
type Summary struct {
	Workspaces int
	Leaves     int
	Groups     int
	Gaps       int
	Created    int
}

// Walker runs one document against one repository root.
type Walker struct {
	doc    *bushfile.Document
	repo   *workspace.Repository
	exec   runtime.Executor
	syn    *scaffold.Synthesizer
	logger *log.Logger
	opts   Options
}

// New prepares a run of doc. Files are read and written through fsys; side
// effects go through exec. Link targets are checked here so a broken
// document fails before anything is written.
func New(fsys afero.Fs, doc *bushfile.Document, exec runtime.Executor, logger *log.Logger, opts Options) (*Walker, error) {
	repo, err := workspace.NewRepository(doc.Config)
	if err != nil {
		return nil, &bushfile.ConfigError{Path: doc.Path, Err: err}
	}
	if err := linker.New(repo, matcher.New(), doc.Path).Check(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	syn := scaffold.New(fsys, repo, exec, scaffold.Options{
		Root:   opts.Root,
		Prune:  opts.Prune,
		Source: doc.Path,
	})
	return &Walker{doc: doc, repo: repo, exec: exec, syn: syn, logger: logger, opts: opts}, nil
}

// Run scaffolds the repository. The first error aborts the run.
func (w *Walker) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{}

	root, err := w.syn.Root(ctx)
	if err != nil {
		return sum, fmt.Errorf("root manifest: %w", err)
	}
	if root.Created {
		sum.Created++
	}
	w.logger.Info("root manifest", "path", root.Path, "dependencies", root.Dependencies)

	for _, ws := range w.repo.Workspaces() {
		if err := w.exec.EnsureDir(ctx, ws.Root(w.opts.Root)); err != nil {
			return sum, err
		}
		if err := w.visit(ctx, ws, ws.Tree.Root, w.logger.WithPrefix(ws.Name), sum); err != nil {
			return sum, fmt.Errorf("workspace %s: %w", ws.Name, err)
		}
		sum.Workspaces++
	}

	if w.opts.NoInstall {
		w.logger.Debug("install skipped")
		return sum, nil
	}

	manager := w.repo.Config.ManagerOrDefault()
	w.logger.Info("installing", "manager", manager)
	err = w.exec.Invoke(ctx, runtime.Invocation{
		Dir:     w.opts.Root,
		Manager: manager,
		Action:  runtime.ActionInstall,
	})
	if err != nil {
		return sum, err
	}
	return sum, nil
}

// visit handles node and then its children in declaration order. logger
// carries the node's prefix and is dropped when visit returns.
func (w *Walker) visit(ctx context.Context, ws *workspace.Workspace, node *workspace.Node, logger *log.Logger, sum *Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !node.IsRoot() {
		logger = logger.WithPrefix(ws.Name + ":" + node.Address)
		if err := w.handle(ctx, ws, node, logger, sum); err != nil {
			return err
		}
	}

	for _, child := range node.Children {
		if err := w.visit(ctx, ws, child, logger, sum); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) handle(ctx context.Context, ws *workspace.Workspace, node *workspace.Node, logger *log.Logger, sum *Summary) error {
	addr := node.Address

	switch {
	case ws.IsLeaf(addr):
		res, err := w.syn.Package(ctx, ws, addr)
		if err != nil {
			return err
		}
		sum.Leaves++
		if res.Created {
			sum.Created++
		}
		logger.Info(res.Name, "created", res.Created, "dependencies", res.Dependencies)

	case w.opts.FillGaps && len(node.Children) == 0 && !ws.HasName(addr):
		if err := w.doc.AnnotateGap(ws.Name, addr); err != nil {
			return err
		}
		if err := w.doc.Save(); err != nil {
			return err
		}
		sum.Gaps++
		logger.Warn("unnamed package annotated", "config", w.doc.Path)

	default:
		sum.Groups++
		logger.Debug("group")
	}
	return nil
}
