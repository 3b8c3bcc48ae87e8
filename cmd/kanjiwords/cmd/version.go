package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/kanjiwords/internal/app"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kanjiwords %s\n", app.BuildVersion())
	},
}
