package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/grantmatch/internal/grants"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s (built-in catalog: %d grants)\n", app, version, grants.Default().Len())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
