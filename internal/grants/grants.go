// Package grants holds the grant catalog and decides which grants a profile
// qualifies for.
//
// A grant is eligible when every one of its requirements passes. Requirements
// are plain data (a check kind plus parameters) so the whole catalog can live in
// a YAML document, be validated up front and be tested without running
// arbitrary code.
package grants

import (
	"fmt"

	"github.com/spigell/grantmatch/internal/profile"
)

type Grant struct {
	ID              string       `yaml:"id"`
	Title           string       `yaml:"title"`
	Organization    string       `yaml:"organization"`
	Amount          string       `yaml:"amount"`
	Deadline        string       `yaml:"deadline"`
	Category        string       `yaml:"category"`
	Image           string       `yaml:"image,omitempty"`
	Summary         string       `yaml:"summary"`
	Description     string       `yaml:"description"`
	FullDescription string       `yaml:"full_description,omitempty"`
	Active          bool         `yaml:"active"`
	Tags            []string     `yaml:"tags,omitempty"`
	DetailFacts     []DetailFact `yaml:"detail_facts,omitempty"`
	Notes           []string     `yaml:"notes,omitempty"`
	Apply           ApplyContent `yaml:"apply"`

	// Requirements is the only input to eligibility. Apply.EligibilityChecks is
	// a display checklist and is never compared against it.
	Requirements []*Requirement `yaml:"requirements"`

	amountValue float64
}

// DetailFact is a display-only note rendered as a chip on the detail screen.
type DetailFact struct {
	ID      string   `yaml:"id"`
	Label   string   `yaml:"label"`
	Icon    string   `yaml:"icon"`
	BG      string   `yaml:"bg"`
	Details []string `yaml:"details,omitempty"`
}

type ApplyContent struct {
	EligibilityChecks []string `yaml:"eligibility_checks"`
	RequiredDocuments []string `yaml:"required_documents"`
	Portal            Portal   `yaml:"portal"`
	Tips              []string `yaml:"tips,omitempty"`
}

type Portal struct {
	Label        string `yaml:"label"`
	Instructions string `yaml:"instructions"`
	URL          string `yaml:"url,omitempty"`
}

// AmountValue is the numeric reading of Amount used for sorting and totals.
func (g *Grant) AmountValue() float64 {
	return g.amountValue
}

type Requirement struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Description string `yaml:"description,omitempty"`
	// Field names the profile field the UI should point the user at.
	Field string `yaml:"field,omitempty"`
	Check Check  `yaml:"check"`

	// Func replaces Check when set. It must be a pure function of the profile.
	Func func(profile.Profile) bool `yaml:"-"`
}

// Passes runs the requirement against p. A check that cannot run (unknown kind
// or field) is a catalog defect and panics.
func (r *Requirement) Passes(p profile.Profile) bool {
	if r.Func != nil {
		return r.Func(p)
	}
	return r.Check.eval(r.Field, p)
}

type CheckKind string

const (
	CheckPresent         CheckKind = "present"
	CheckIncludesAny     CheckKind = "includes_any"
	CheckIncomeAtMost    CheckKind = "income_at_most"
	CheckBritishColumbia CheckKind = "british_columbia"
	CheckLevelAtLeast    CheckKind = "level_at_least"
	CheckRuralBCPostal   CheckKind = "rural_bc_postal"
)

var checkKinds = map[CheckKind]struct{}{
	CheckPresent:         {},
	CheckIncludesAny:     {},
	CheckIncomeAtMost:    {},
	CheckBritishColumbia: {},
	CheckLevelAtLeast:    {},
	CheckRuralBCPostal:   {},
}

// Check describes a single predicate over one profile field. Field falls back
// to the owning requirement's Field.
type Check struct {
	Kind    CheckKind `yaml:"kind"`
	Field   string    `yaml:"field,omitempty"`
	Options []string  `yaml:"options,omitempty"`
	Limit   float64   `yaml:"limit,omitempty"`
	Level   string    `yaml:"level,omitempty"`
}

func (c Check) field(fallback string) string {
	if c.Field != "" {
		return c.Field
	}
	return fallback
}

func (c Check) eval(fallback string, p profile.Profile) bool {
	field := c.field(fallback)
	value, ok := p.Value(field)
	if !ok {
		panic(fmt.Sprintf("grants: check %q reads unknown profile field %q", c.Kind, field))
	}

	switch c.Kind {
	case CheckPresent:
		return Present(value)
	case CheckIncludesAny:
		return IncludesAny(value, c.Options)
	case CheckIncomeAtMost:
		return IncomeAtMost(value, c.Limit)
	case CheckBritishColumbia:
		return IsBritishColumbia(value)
	case CheckLevelAtLeast:
		return LevelAtLeast(value, c.Level)
	case CheckRuralBCPostal:
		return IsRuralBCPostalCode(value)
	default:
		panic(fmt.Sprintf("grants: unknown check kind %q", c.Kind))
	}
}

type EligibilityResult struct {
	Eligible bool
	Met      []*Requirement
	Unmet    []*Requirement
}

// UnmetLabels returns the labels the detail screen lists as missing.
func (r EligibilityResult) UnmetLabels() []string {
	labels := make([]string, 0, len(r.Unmet))
	for _, req := range r.Unmet {
		labels = append(labels, req.Label)
	}
	return labels
}

// Evaluate partitions the grant's requirements into met and unmet for p. Each
// check runs exactly once, in catalog order. A grant without requirements is
// eligible for everyone.
func Evaluate(g *Grant, p profile.Profile) EligibilityResult {
	result := EligibilityResult{
		Met:   make([]*Requirement, 0, len(g.Requirements)),
		Unmet: make([]*Requirement, 0),
	}

	for _, req := range g.Requirements {
		if req.Passes(p) {
			result.Met = append(result.Met, req)
			continue
		}
		result.Unmet = append(result.Unmet, req)
	}

	result.Eligible = len(result.Unmet) == 0
	return result
}
