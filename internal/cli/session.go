package cli

import (
	"fmt"
	"path/filepath"

	"github.com/bushkit/bush/internal/bushfile"
	"github.com/bushkit/bush/internal/config"
	"github.com/bushkit/bush/internal/runtime"
	"github.com/bushkit/bush/internal/workspace"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// session is the resolved state shared by commands that operate on a
// repository document.
type session struct {
	fs       afero.Fs
	settings *config.Settings
	doc      *bushfile.Document
	root     string
	logger   *log.Logger
}

func loadSettings(cmd *cobra.Command, fsys afero.Fs) (*config.Settings, error) {
	loader := config.NewLoader(fsys, config.FilePath())
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	return loader.Load()
}

func newSession(cmd *cobra.Command) (*session, error) {
	fsys := afero.NewOsFs()
	settings, err := loadSettings(cmd, fsys)
	if err != nil {
		return nil, err
	}

	doc, err := bushfile.Load(fsys, settings.Config)
	if err != nil {
		return nil, err
	}
	if settings.Manager != "" {
		doc.Config.Manager = settings.Manager
	}

	root, err := resolveRoot(settings.Root, doc)
	if err != nil {
		return nil, err
	}

	return &session{
		fs:       fsys,
		settings: settings,
		doc:      doc,
		root:     root,
		logger:   newLogger(cmd.ErrOrStderr(), settings.Verbose),
	}, nil
}

// resolveRoot picks the repository root: the explicit setting, then the
// document's start-location relative to the document, then the current
// directory.
func resolveRoot(explicit string, doc *bushfile.Document) (string, error) {
	root := explicit
	if root == "" && doc.Config.StartLocation != "" {
		root = doc.Config.StartLocation
		if !filepath.IsAbs(root) {
			root = filepath.Join(filepath.Dir(doc.Path), root)
		}
	}
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", root, err)
	}
	return abs, nil
}

func (s *session) repository() (*workspace.Repository, error) {
	repo, err := workspace.NewRepository(s.doc.Config)
	if err != nil {
		return nil, &bushfile.ConfigError{Path: s.doc.Path, Err: err}
	}
	return repo, nil
}

func (s *session) executor(cmd *cobra.Command) *runtime.ShellExecutor {
	e := runtime.NewShellExecutor(s.fs)
	if s.settings.Verbose {
		e.Stdout = cmd.ErrOrStderr()
		e.Stderr = cmd.ErrOrStderr()
	}
	return e
}
