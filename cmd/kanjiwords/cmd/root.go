package cmd

import (
	"github.com/spf13/cobra"
)

// configPath is the --config flag shared by all subcommands.
var configPath string

var rootCmd = &cobra.Command{
	Use:           "kanjiwords",
	Short:         "Jōyō kanji example vocabulary generator",
	Long:          "Maps every jōyō kanji to example words containing it, with readings and English glosses.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config (default: $CONFIG_PATH or ./config.yaml)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}
