package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/bushkit/bush/internal/branding"
	"github.com/bushkit/bush/internal/config"
	"github.com/bushkit/bush/internal/walker"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: TitleStyle.Render(branding.DisplayName()) + SubtitleStyle.Render(" - "+branding.Description()) + `

` + branding.CLIName() + ` reads ` + branding.ConfigFile() + `, a tree of package addresses per workspace
with naming and dependency rules, and materializes one package.json per named
address. Intra-repo links and external dependencies are placed into the right
buckets and the package manager's install step runs at the end.

Running it again is safe: manifests are updated in place and fields bush does
not manage are kept.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScaffold,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String(config.KeyRoot, "", "repository root (default: start-location from the document, else .)")
	pf.StringP(config.KeyConfig, "c", branding.ConfigFile(), "path to the repository document")
	pf.String(config.KeyManager, "", "override the document's package manager")
	pf.BoolP(config.KeyVerbose, "v", false, "enable debug logging and show package-manager output")

	f := rootCmd.Flags()
	f.Bool(config.KeyFillGaps, false, "record unnamed childless addresses as empty names in the document")
	f.Bool(config.KeyPrune, false, "clear dependency buckets before applying rules")
	f.Bool(config.KeyNoInstall, false, "skip the final install step")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(ctx context.Context, version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
}

func runScaffold(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	w, err := walker.New(s.fs, s.doc, s.executor(cmd), s.logger, walker.Options{
		Root:      s.root,
		FillGaps:  s.settings.FillGaps,
		Prune:     s.settings.Prune,
		NoInstall: s.settings.NoInstall,
	})
	if err != nil {
		return err
	}

	sum, err := w.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("scaffolding %s: %w", s.root, err)
	}

	s.logger.Info("done",
		"workspaces", sum.Workspaces,
		"packages", sum.Leaves,
		"groups", sum.Groups,
		"created", sum.Created,
		"gaps", sum.Gaps,
	)
	return nil
}
