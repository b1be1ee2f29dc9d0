// Package apply tracks the boxes a user ticks while working through a grant's
// application steps. The checklist is informational: it never feeds back into
// eligibility.
package apply

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/grantmatch/internal/grants"
)

type Section string

const (
	SectionEligibility Section = "eligibility"
	SectionDocument    Section = "document"
)

// Key identifies one checkbox, e.g. "eligibility-0" or "document-2".
func Key(section Section, index int) string {
	return fmt.Sprintf("%s-%d", section, index)
}

// ParseKey splits a checkbox key back into its section and index.
func ParseKey(key string) (Section, int, error) {
	idx := strings.LastIndex(key, "-")
	if idx <= 0 {
		return "", 0, fmt.Errorf("malformed checklist key %q", key)
	}

	section := Section(key[:idx])
	if section != SectionEligibility && section != SectionDocument {
		return "", 0, fmt.Errorf("unknown checklist section %q", section)
	}

	index, err := strconv.Atoi(key[idx+1:])
	if err != nil || index < 0 {
		return "", 0, fmt.Errorf("malformed checklist index in %q", key)
	}
	return section, index, nil
}

// Checklist holds the ticked boxes for one grant's apply flow.
type Checklist struct {
	eligibility []string
	documents   []string
	checked     map[string]bool
}

// NewChecklist starts an empty checklist over g's apply bundle.
func NewChecklist(g *grants.Grant) *Checklist {
	return &Checklist{
		eligibility: g.Apply.EligibilityChecks,
		documents:   g.Apply.RequiredDocuments,
		checked:     make(map[string]bool),
	}
}

// Items returns the labels in a section.
func (c *Checklist) Items(section Section) []string {
	switch section {
	case SectionEligibility:
		return c.eligibility
	case SectionDocument:
		return c.documents
	default:
		return nil
	}
}

// Toggle flips a box and returns its new state. Boxes outside the lists are
// rejected.
func (c *Checklist) Toggle(section Section, index int) (bool, error) {
	if index < 0 || index >= len(c.Items(section)) {
		return false, fmt.Errorf("no %s item at index %d", section, index)
	}
	key := Key(section, index)
	c.checked[key] = !c.checked[key]
	return c.checked[key], nil
}

// Checked reports whether a box is ticked.
func (c *Checklist) Checked(section Section, index int) bool {
	return c.checked[Key(section, index)]
}

// EligibilityComplete is true once every eligibility box is ticked.
func (c *Checklist) EligibilityComplete() bool {
	return c.complete(SectionEligibility)
}

// DocumentsComplete is true once every document box is ticked.
func (c *Checklist) DocumentsComplete() bool {
	return c.complete(SectionDocument)
}

// An empty section is never complete.
func (c *Checklist) complete(section Section) bool {
	items := c.Items(section)
	if len(items) == 0 {
		return false
	}
	for idx := range items {
		if !c.Checked(section, idx) {
			return false
		}
	}
	return true
}

// Keys returns the ticked box keys, eligibility first.
func (c *Checklist) Keys() []string {
	keys := make([]string, 0, len(c.checked))
	for _, section := range []Section{SectionEligibility, SectionDocument} {
		for idx := range c.Items(section) {
			if c.Checked(section, idx) {
				keys = append(keys, Key(section, idx))
			}
		}
	}
	return keys
}

// Restore ticks the boxes named by keys. Unknown or out-of-range keys are
// reported and skipped.
func (c *Checklist) Restore(keys []string) error {
	var bad []string
	for _, key := range keys {
		section, index, err := ParseKey(key)
		if err != nil || index >= len(c.Items(section)) {
			bad = append(bad, key)
			continue
		}
		c.checked[Key(section, index)] = true
	}
	if len(bad) > 0 {
		return fmt.Errorf("skipped checklist keys: %s", strings.Join(bad, ", "))
	}
	return nil
}

// Outcome is what the user reports back after applying.
type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomePending  Outcome = "pending"
	OutcomeRejected Outcome = "rejected"
)

// Outcomes lists the outcomes in the order they are offered.
var Outcomes = []Outcome{OutcomeApproved, OutcomePending, OutcomeRejected}

// ParseOutcome accepts an outcome name in any case.
func ParseOutcome(value string) (Outcome, error) {
	normalized := Outcome(strings.ToLower(strings.TrimSpace(value)))
	for _, o := range Outcomes {
		if o == normalized {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown outcome %q", value)
}
