package cli

import (
	"fmt"
	"path/filepath"

	"github.com/bushkit/bush/internal/branding"
	"github.com/bushkit/bush/internal/platform"
	"github.com/bushkit/bush/internal/scaffold"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	initName       string
	initScope      string
	initWorkspaces []string
	initForce      bool
)

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "root package name")
	initCmd.Flags().StringVar(&initScope, "scope", "", "default npm scope of the packages")
	initCmd.Flags().StringSliceVarP(&initWorkspaces, "workspace", "w", nil, "workspace to declare (repeatable, default: packages)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing document")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter " + branding.ConfigFile(),
	Long: `Write a starter repository document with one example package per workspace.
The document is written to the --config path and validated before it is saved.
node_modules/ is added to the .gitignore next to it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fsys := afero.NewOsFs()
		settings, err := loadSettings(cmd, fsys)
		if err != nil {
			return err
		}

		data := scaffold.NewInitData(initName, settings.Manager, initScope, initWorkspaces)
		if err := scaffold.InitDocument(fsys, settings.Config, data, initForce); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", settings.Config)

		added, err := platform.EnsureIgnored(fsys, filepath.Dir(settings.Config), "node_modules/")
		if err != nil {
			return err
		}
		for _, p := range added {
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", p, platform.GitignoreFile)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Run '%s' to scaffold the packages.\n", branding.CLIName())
		return nil
	},
}
