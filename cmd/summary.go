package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/grantmatch/internal/grants"
	"github.com/spigell/grantmatch/internal/utils"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the home screen digest for the current profile",
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()
		sum := grants.Summarize(s.catalog, s.profile())
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Hi, %s\n%s\n\n", sum.Name, sum.Role)
		fmt.Fprintf(out, "Profile complete: %s\n", utils.Percent(sum.Completion))
		fmt.Fprintf(out, "Eligible grants: %d worth up to %s\n\n", sum.Count, utils.FormatAmount(sum.Total))

		for _, title := range sum.Titles {
			fmt.Fprintf(out, "  * %s\n", title)
		}
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
