package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/bushkit/bush/internal/workspace"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(treeCmd)
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the workspace trees",
	Long: `Print every workspace's addresses in walk order. Named addresses are
LEAF packages with their scoped name; other addresses are GROUPs, and
unnamed childless addresses are GAPs that --fill-gaps would annotate.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		repo, err := s.repository()
		if err != nil {
			return err
		}
		renderTree(cmd.OutOrStdout(), repo)
		return nil
	},
}

func renderTree(w io.Writer, repo *workspace.Repository) {
	for i, ws := range repo.Workspaces() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", TitleStyle.Render(ws.Name), SubtitleStyle.Render("@"+ws.Scope()))
		for _, addr := range ws.Tree.Addresses() {
			node, _ := ws.Tree.Lookup(addr)
			indent := strings.Repeat("  ", node.Depth)
			label := fmt.Sprintf("%s%-*s", indent, 24-len(indent), node.Alias)

			switch {
			case ws.IsLeaf(addr):
				name, _ := ws.ScopedName(addr)
				fmt.Fprintf(w, "%s %s %s\n", label, leafStyle.Render("LEAF "), name)
			case len(node.Children) == 0 && !ws.HasName(addr):
				fmt.Fprintf(w, "%s %s\n", label, gapStyle.Render("GAP  "))
			default:
				fmt.Fprintf(w, "%s %s\n", label, groupStyle.Render("GROUP"))
			}
		}
	}
}
