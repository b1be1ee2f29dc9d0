package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/grantmatch/internal/grants"
	"github.com/spigell/grantmatch/internal/listing"
	"github.com/spigell/grantmatch/internal/utils"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a grant and the requirements the profile does not meet yet",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()
		g := s.grant(args[0])
		result := grants.Evaluate(g, s.profile())

		if err := writeGrant(cmd.OutOrStdout(), g, result, s.state().Get(g.ID)); err != nil {
			s.logger.Fatal("writing the grant", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func writeGrant(out io.Writer, g *grants.Grant, result grants.EligibilityResult, flags listing.Flags) error {
	fmt.Fprintf(out, "%s\n%s\n\n", g.Title, g.Organization)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Amount:\t%s\n", g.Amount)
	if value := g.AmountValue(); value > 0 {
		fmt.Fprintf(w, "Parsed amount:\t%s\n", utils.FormatAmount(value))
	}
	fmt.Fprintf(w, "Deadline:\t%s\n", g.Deadline)
	fmt.Fprintf(w, "Category:\t%s\n", g.Category)
	fmt.Fprintf(w, "Open:\t%s\n", yesNo(g.Active))
	fmt.Fprintf(w, "Eligible:\t%s\n", yesNo(result.Eligible))
	fmt.Fprintf(w, "Saved:\t%s\n", yesNo(flags.Saved))
	fmt.Fprintf(w, "Applied:\t%s\n", yesNo(flags.Applied))
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s\n", g.FullDescription)

	if len(g.Requirements) > 0 {
		fmt.Fprintln(out, "\nRequirements")
		for _, req := range result.Met {
			fmt.Fprintf(out, "  [x] %s\n", req.Label)
		}
		for _, req := range result.Unmet {
			fmt.Fprintf(out, "  [ ] %s\n", req.Label)
			if req.Description != "" {
				fmt.Fprintf(out, "      %s\n", req.Description)
			}
		}
	}
	if !result.Eligible {
		fmt.Fprintf(out, "\nMissing: %s\n", strings.Join(result.UnmetLabels(), ", "))
	}

	if len(g.DetailFacts) > 0 {
		fmt.Fprintln(out, "\nAt a glance")
		for _, fact := range g.DetailFacts {
			fmt.Fprintf(out, "  * %s\n", fact.Label)
			for _, detail := range fact.Details {
				fmt.Fprintf(out, "      %s\n", detail)
			}
		}
	}

	writeList(out, "Notes", g.Notes)
	writeList(out, "Eligibility checklist", g.Apply.EligibilityChecks)
	writeList(out, "Required documents", g.Apply.RequiredDocuments)

	portal := g.Apply.Portal
	if portal.Label != "" || portal.URL != "" {
		fmt.Fprintf(out, "\nWhere to apply: %s\n", portal.Label)
		if portal.Instructions != "" {
			fmt.Fprintf(out, "  %s\n", portal.Instructions)
		}
		if portal.URL != "" {
			fmt.Fprintf(out, "  %s\n", portal.URL)
		}
	}

	writeList(out, "Tips", g.Apply.Tips)
	return nil
}

func writeList(out io.Writer, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s\n", title)
	for _, line := range lines {
		fmt.Fprintf(out, "  * %s\n", line)
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
