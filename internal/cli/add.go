package cli

import (
	"fmt"

	"github.com/bushkit/bush/internal/branding"
	"github.com/bushkit/bush/internal/linker"
	"github.com/bushkit/bush/internal/runtime"
	"github.com/bushkit/bush/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	addDev       bool
	addPeer      bool
	addWorkspace string
)

func init() {
	addCmd.Flags().BoolVarP(&addDev, "dev", "D", false, "save as a dev dependency")
	addCmd.Flags().BoolVarP(&addPeer, "peer", "P", false, "save as a peer dependency")
	addCmd.Flags().StringVarP(&addWorkspace, "workspace", "w", "", "workspace of a bare address")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <target> <package>",
	Short: "Add a dependency to one package through the package manager",
	Long: `Run the package manager's add command in the directory of one package.

The target is "<workspace>@<address>", a bare address with --workspace, or "."
for the root package. The manifest is re-read afterwards and its dependency
buckets sorted. Use a dependency rule in ` + branding.ConfigFile() + ` to make the addition permanent.`,
	Example: `  bush add libs@core zod
  bush add core -w libs --dev vitest
  bush add . --dev typescript`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	if addDev && addPeer {
		return fmt.Errorf("--dev and --peer are mutually exclusive")
	}
	mode := runtime.SaveProd
	switch {
	case addDev:
		mode = runtime.SaveDev
	case addPeer:
		mode = runtime.SavePeer
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	repo, err := s.repository()
	if err != nil {
		return err
	}

	target, specifier := args[0], args[1]
	dir := s.root
	if target != "." {
		t, err := linker.ParseTarget(target, addWorkspace)
		if err != nil {
			return err
		}
		if t.Workspace == "" {
			return fmt.Errorf("target %q has no workspace; use <workspace>@<address> or --workspace", target)
		}
		ws := repo.Workspace(t.Workspace)
		if ws == nil {
			return fmt.Errorf("unknown workspace %q", t.Workspace)
		}
		if !ws.IsLeaf(t.Address) {
			return fmt.Errorf("%s is not a named package", t)
		}
		dir = ws.Dir(s.root, t.Address)
	}

	syn := scaffold.New(s.fs, repo, s.executor(cmd), scaffold.Options{Root: s.root, Source: s.doc.Path})
	if err := syn.Add(cmd.Context(), dir, specifier, mode); err != nil {
		return err
	}
	s.logger.Info("added", "package", specifier, "dir", dir, "save", mode)
	return nil
}
