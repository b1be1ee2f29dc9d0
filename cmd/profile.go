package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/grantmatch/internal/payload"
	"github.com/spigell/grantmatch/internal/profile"
	"github.com/spigell/grantmatch/internal/storage"
	"github.com/spigell/grantmatch/internal/utils"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect and edit the stored profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the profile grants are matched against",
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()
		p := s.profile()
		out := cmd.OutOrStdout()

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, field := range profile.Fields() {
			value, _ := p.Value(field)
			fmt.Fprintf(w, "%s\t%s\n", field, value)
		}
		if err := w.Flush(); err != nil {
			s.logger.Fatal("writing the profile", zap.Error(err))
		}
		fmt.Fprintf(out, "\nComplete: %s\n", utils.Percent(p.Completion()))
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set <field=value>...",
	Short: "Set one or more profile fields, an empty value clears the field",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()

		s.warnShadowed()
		p, err := setProfileFields(s.store, args)
		if err != nil {
			s.logger.Fatal("updating the profile", zap.Error(err))
		}

		s.logger.Info("profile updated", zap.Int("fields", len(args)))
		fmt.Fprintf(cmd.OutOrStdout(), "Profile %s complete\n", utils.Percent(p.Completion()))
	},
}

var profileImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Fill the profile from a document extraction answer",
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()

		file, _ := cmd.Flags().GetString("file")
		data, _ := cmd.Flags().GetString("data")
		raw, err := payload.Load(payload.Source{
			Name:  "extraction answer",
			Value: data,
			File:  file,
			Stdin: cmd.InOrStdin(),
		})
		if err != nil {
			s.logger.Fatal("reading the extraction answer", zap.Error(err), zap.String("hint", "pass --file, --file - or --data"))
		}

		extraction, err := profile.ParseExtraction(raw)
		if err != nil {
			s.logger.Fatal("parsing the extraction answer", zap.Error(err))
		}

		current := s.storedProfile()
		imported := extraction.ApplyTo(current)

		diff, err := profile.Diff(current, imported)
		if err != nil {
			s.logger.Fatal("comparing profiles", zap.Error(err))
		}

		out := cmd.OutOrStdout()
		if diff == "" {
			fmt.Fprintln(out, "Nothing to change.")
			return
		}
		fmt.Fprint(out, diff)

		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			s.logger.Info("dry run, profile left untouched")
			return
		}

		s.saveProfile(imported)
		s.logger.Info("profile imported", zap.String("completion", utils.Percent(imported.Completion())))
	},
}

var profileResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the stored profile",
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			prompt := promptui.Select{
				Label: "Reset the stored profile?",
				Items: []string{PromptNo, PromptYes},
			}
			_, answer, err := prompt.Run()
			if err != nil {
				s.logger.Fatal("exiting", zap.Error(err))
			}
			if answer != PromptYes {
				s.logger.Info("exiting", zap.String("reason", "got no from prompt"))
				return
			}
		}

		if err := s.store.ResetProfile(); err != nil {
			s.logger.Fatal("resetting the profile", zap.Error(err))
		}
		s.logger.Info("profile reset")
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd, profileImportCmd, profileResetCmd)

	profileImportCmd.Flags().StringP("file", "f", "", "file holding the extraction answer, - reads stdin")
	profileImportCmd.Flags().String("data", "", "inline extraction answer")
	profileImportCmd.Flags().Bool("dry-run", false, "print the changes without saving them")

	profileResetCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
}

// setProfileFields applies field=value pairs to the stored profile and saves
// it. Nothing is written when the stored record cannot be read or an
// assignment is rejected.
func setProfileFields(store *storage.Store, args []string) (profile.Profile, error) {
	current, err := loadEditableProfile(store)
	if err != nil {
		return profile.Profile{}, err
	}

	updated, err := applyAssignments(current, args)
	if err != nil {
		return profile.Profile{}, err
	}

	if err := store.SaveProfile(updated); err != nil {
		return profile.Profile{}, err
	}
	return updated, nil
}

// applyAssignments sets every field=value pair on p in order.
func applyAssignments(p profile.Profile, args []string) (profile.Profile, error) {
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok {
			return p, fmt.Errorf("expected field=value, got %q", arg)
		}

		var err error
		p, err = p.With(strings.TrimSpace(field), value)
		if err != nil {
			return p, err
		}
	}
	return p, nil
}
