package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/grantmatch/internal/logger"
)

var saveCmd = &cobra.Command{
	Use:   "save <id>",
	Short: "Save a grant, or unsave it when it is already saved",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()
		g := s.grant(args[0])
		state := s.state()

		saved := state.ToggleSaved(g.ID)
		s.saveState(state)

		log := logger.WithGrant(s.logger, g.ID, g.Organization)
		if saved {
			log.Info("grant saved")
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", g.Title)
			return
		}
		log.Info("grant unsaved")
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from saved grants\n", g.Title)
	},
}

var appliedCmd = &cobra.Command{
	Use:   "applied <id>",
	Short: "Mark a grant as applied",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()
		g := s.grant(args[0])
		state := s.state()

		state.MarkApplied(g.ID)
		s.saveState(state)

		logger.WithGrant(s.logger, g.ID, g.Organization).Info("grant marked as applied")
		fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as applied\n", g.Title)
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(appliedCmd)
}
