package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/grantmatch/internal/apply"
	"github.com/spigell/grantmatch/internal/grants"
	"github.com/spigell/grantmatch/internal/logger"
)

const (
	PromptEligibility = "Step 1: Check eligibility"
	PromptDocuments   = "Step 2: Gather documents"
	PromptSubmit      = "Step 3: Submit application"
	PromptResult      = "Step 4: Report the result"
	PromptBack        = "back"
	PromptExit        = "exit"
)

var applyCmd = &cobra.Command{
	Use:   "apply <id>",
	Short: "Walk through the application steps of a grant",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()
		g := s.grant(args[0])
		log := logger.WithGrant(s.logger, g.ID, g.Organization)

		keys, err := s.store.LoadChecklist(g.ID)
		if err != nil {
			log.Fatal("loading the checklist", zap.Error(err))
		}

		checklist := apply.NewChecklist(g)
		if err := checklist.Restore(keys); err != nil {
			log.Warn("restoring the checklist", zap.Error(err))
		}

		flow := &applyFlow{
			session:   s,
			grant:     g,
			checklist: checklist,
			logger:    log,
			out:       cmd.OutOrStdout(),
		}
		if err := flow.run(); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			log.Fatal("exiting", zap.Error(err))
		}
	},
}

var errExit = errors.New("exit requested")

func init() {
	rootCmd.AddCommand(applyCmd)
}

type applyFlow struct {
	session   *session
	grant     *grants.Grant
	checklist *apply.Checklist
	logger    *zap.Logger
	out       io.Writer
}

func (f *applyFlow) run() error {
	for {
		prompt := promptui.Select{
			Label: fmt.Sprintf("Apply to %s", f.grant.Title),
			Items: []string{
				f.stepLabel(PromptEligibility, apply.SectionEligibility),
				f.stepLabel(PromptDocuments, apply.SectionDocument),
				PromptSubmit,
				PromptResult,
				PromptExit,
			},
		}

		idx, _, err := prompt.Run()
		if err != nil {
			return promptErr(err)
		}

		switch idx {
		case 0:
			err = f.tick(apply.SectionEligibility)
		case 1:
			err = f.tick(apply.SectionDocument)
		case 2:
			f.submit()
		case 3:
			err = f.report()
		default:
			return errExit
		}
		if err != nil {
			return err
		}
	}
}

func (f *applyFlow) stepLabel(label string, section apply.Section) string {
	if f.complete(section) {
		return label + " (done)"
	}
	return label
}

func (f *applyFlow) complete(section apply.Section) bool {
	if section == apply.SectionEligibility {
		return f.checklist.EligibilityComplete()
	}
	return f.checklist.DocumentsComplete()
}

// tick lets the user toggle boxes in one section until they go back.
func (f *applyFlow) tick(section apply.Section) error {
	labels := f.checklist.Items(section)
	if len(labels) == 0 {
		fmt.Fprintln(f.out, "Nothing to check for this step.")
		return nil
	}

	for {
		items := make([]string, 0, len(labels)+1)
		for idx, label := range labels {
			mark := "[ ]"
			if f.checklist.Checked(section, idx) {
				mark = "[x]"
			}
			items = append(items, fmt.Sprintf("%s %s", mark, label))
		}
		items = append(items, PromptBack)

		prompt := promptui.Select{
			Label: "Toggle an item and press ENTER",
			Items: items,
			Size:  len(items),
		}

		idx, _, err := prompt.Run()
		if err != nil {
			return promptErr(err)
		}
		if idx == len(labels) {
			return nil
		}

		checked, err := f.checklist.Toggle(section, idx)
		if err != nil {
			return err
		}
		if err := f.session.store.SaveChecklist(f.grant.ID, f.checklist.Keys()); err != nil {
			return fmt.Errorf("save checklist: %w", err)
		}
		f.logger.Debug("checklist item toggled",
			zap.String("key", apply.Key(section, idx)),
			zap.Bool("checked", checked),
		)
	}
}

func (f *applyFlow) submit() {
	portal := f.grant.Apply.Portal
	if portal.Label == "" && portal.URL == "" {
		fmt.Fprintln(f.out, "Grant steps unavailable.")
		return
	}

	fmt.Fprintf(f.out, "%s\n", portal.Label)
	if portal.Instructions != "" {
		fmt.Fprintf(f.out, "  %s\n", portal.Instructions)
	}
	if portal.URL != "" {
		fmt.Fprintf(f.out, "  Open %s\n", portal.URL)
	}
	writeList(f.out, "Tips", f.grant.Apply.Tips)
}

// report records the outcome and marks the grant as applied.
func (f *applyFlow) report() error {
	items := make([]string, 0, len(apply.Outcomes)+1)
	for _, o := range apply.Outcomes {
		items = append(items, string(o))
	}
	items = append(items, PromptBack)

	prompt := promptui.Select{
		Label: "Did your application get approved?",
		Items: items,
	}
	_, selected, err := prompt.Run()
	if err != nil {
		return promptErr(err)
	}
	if selected == PromptBack {
		return nil
	}

	outcome, err := apply.ParseOutcome(selected)
	if err != nil {
		return err
	}

	state := f.session.state()
	state.MarkApplied(f.grant.ID)
	f.session.saveState(state)

	f.logger.Info("application result", zap.String("outcome", string(outcome)))
	fmt.Fprintf(f.out, "Marked %s as applied (%s)\n", f.grant.Title, outcome)
	return nil
}

func promptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return errExit
	}
	return err
}
