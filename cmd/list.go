package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/grantmatch/internal/listing"
	"github.com/spigell/grantmatch/internal/utils"
)

const (
	titleWidth        = 42
	organizationWidth = 32
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List grants for the current profile",
	Run: func(cmd *cobra.Command, _ []string) {
		list(cmd)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("search", "s", "", "match against grant title and organization")
	listCmd.Flags().StringP("tab", "t", "", "all, eligible or mygrants")
	listCmd.Flags().String("sub", "", "saved or applied, only used by the mygrants tab")
	listCmd.Flags().String("sort", "", "all, active, newest, oldest, amountHigh or amountLow")
	listCmd.Flags().Bool("report", false, "print the list grouped by organization as json")

	viper.BindPFlag("list.tab", listCmd.Flags().Lookup("tab"))
	viper.BindPFlag("list.sub-filter", listCmd.Flags().Lookup("sub"))
	viper.BindPFlag("list.sort", listCmd.Flags().Lookup("sort"))
}

func list(cmd *cobra.Command) {
	s := newSession()
	p := s.profile()
	state := s.state()

	search, _ := cmd.Flags().GetString("search")
	query := listing.Query{
		Search:    search,
		Tab:       listing.ParseTab(s.config.List.Tab),
		SubFilter: listing.ParseSubFilter(s.config.List.SubFilter),
		Sort:      listing.ParseSort(s.config.List.Sort),
	}

	items := listing.Derive(s.catalog, p, query, state, s.logger)
	s.logger.Info("current list of grants",
		zap.String("tab", string(query.Tab)),
		zap.String("sort", string(query.Sort)),
		zap.Int("count", len(items)),
	)

	out := cmd.OutOrStdout()

	if report, _ := cmd.Flags().GetBool("report"); report {
		pretty, err := json.MarshalIndent(listing.ReportByOrganization(items), "", "  ")
		if err != nil {
			s.logger.Fatal("building the report", zap.Error(err))
		}
		fmt.Fprintln(out, string(pretty))
		return
	}

	counts := listing.Count(listing.Items(s.catalog, p, state))
	fmt.Fprintf(out, "%s (%d)\n", query.SectionTitle(), len(items))
	fmt.Fprintf(out, "All %d | Eligible %d | Saved %d | Applied %d | Sort: %s\n\n",
		counts.All, counts.Eligible, counts.Saved, counts.Applied, query.Sort.Label())

	if len(items) == 0 {
		fmt.Fprintln(out, "No grants match.")
		return
	}

	if err := writeItems(out, items); err != nil {
		s.logger.Fatal("writing the list", zap.Error(err))
	}
}

func writeItems(out io.Writer, items []*listing.Item) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tORGANIZATION\tAMOUNT\tDEADLINE\tSTATUS")
	for _, item := range items {
		g := item.Grant
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			g.ID,
			utils.Truncate(g.Title, titleWidth),
			utils.Truncate(g.Organization, organizationWidth),
			g.Amount,
			g.Deadline,
			itemStatus(item),
		)
	}
	return w.Flush()
}

func itemStatus(item *listing.Item) string {
	status := "not eligible"
	if item.Eligible {
		status = "eligible"
	}
	if !item.Grant.Active {
		status += ", closed"
	}
	if item.Saved {
		status += ", saved"
	}
	if item.Applied {
		status += ", applied"
	}
	return status
}
