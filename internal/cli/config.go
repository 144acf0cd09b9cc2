package cli

import (
	"fmt"

	"github.com/bushkit/bush/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write default settings stored at ~/.bush/config.yaml.

Settings use the flag names (root, config, manager, fill-gaps, prune,
no-install, verbose). Flags and BUSH_* environment variables take precedence.`,
}

func userConfig() *config.Loader {
	return config.NewLoader(afero.NewOsFs(), config.FilePath())
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := userConfig().Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := userConfig().Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored configuration values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l := userConfig()
		pairs, err := l.List()
		if err != nil {
			return err
		}
		if len(pairs) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No settings stored in %s\n", l.Path())
			return nil
		}
		for _, kv := range pairs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", kv[0], kv[1])
		}
		return nil
	},
}
