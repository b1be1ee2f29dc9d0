package grants

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spigell/grantmatch/internal/profile"
)

func TestDefaultCatalog(t *testing.T) {
	all := All()
	if len(all) != 7 {
		t.Fatalf("expected 7 grants, got %d", len(all))
	}

	seen := map[string]bool{}
	for _, g := range all {
		if seen[g.ID] {
			t.Fatalf("duplicate grant id %s", g.ID)
		}
		seen[g.ID] = true

		if g.FullDescription == "" {
			t.Fatalf("%s: full description should be filled", g.ID)
		}
		if len(g.Requirements) == 0 {
			t.Fatalf("%s: expected requirements", g.ID)
		}
	}

	if all[0].ID != "stronger-bc-future-skills" || all[6].ID != "project-iset" {
		t.Fatalf("catalog order changed: first %s, last %s", all[0].ID, all[6].ID)
	}

	if len(Map()) != 7 {
		t.Fatalf("expected map with 7 entries")
	}
}

func TestDefaultCatalogDetails(t *testing.T) {
	g, ok := GetByID("soroptimist-live-your-dream")
	if !ok {
		t.Fatalf("expected soroptimist grant")
	}
	if g.Active {
		t.Fatalf("expected soroptimist grant to be inactive")
	}
	if g.AmountValue() != 10000 {
		t.Fatalf("expected amount value 10000, got %v", g.AmountValue())
	}

	g, _ = GetByID("stronger-bc-future-skills")
	if !strings.HasPrefix(g.FullDescription, g.Description) || !strings.HasSuffix(g.FullDescription, fullDescriptionSuffix) {
		t.Fatalf("expected derived full description, got %q", g.FullDescription)
	}

	g, _ = GetByID("masonry-institute-bc")
	if strings.HasSuffix(g.FullDescription, fullDescriptionSuffix) {
		t.Fatalf("explicit full description should be kept as is")
	}
	if g.Apply.Portal.URL == "" || len(g.Apply.Tips) != 1 {
		t.Fatalf("unexpected apply bundle: %+v", g.Apply)
	}
}

func TestGetByIDUnknown(t *testing.T) {
	for _, id := range []string{"", "nope", "STRONGER-BC-FUTURE-SKILLS"} {
		if g, ok := GetByID(id); ok || g != nil {
			t.Fatalf("expected %q to be missing", id)
		}
	}
}

func TestMapIsACopy(t *testing.T) {
	m := Map()
	delete(m, "project-iset")
	if _, ok := GetByID("project-iset"); !ok {
		t.Fatalf("deleting from a returned map must not change the catalog")
	}
}

func TestIncomeRequirement(t *testing.T) {
	g, _ := GetByID("soroptimist-live-your-dream")
	p := profile.Profile{Gender: "Female", HouseholdSize: "3"}

	// Blank income is not treated as zero.
	if Evaluate(g, p).Eligible {
		t.Fatalf("expected blank income to fail")
	}

	p.AnnualFamilyNetIncome = "$85,000"
	if !Evaluate(g, p).Eligible {
		t.Fatalf("expected income at the ceiling to pass")
	}

	p.AnnualFamilyNetIncome = "85000.5"
	if Evaluate(g, p).Eligible {
		t.Fatalf("expected income above the ceiling to fail")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("parse marshalled catalog: %v", err)
	}
	if c.Len() != Default().Len() {
		t.Fatalf("expected %d grants, got %d", Default().Len(), c.Len())
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	doc := `
grants:
  - id: local-bursary
    title: Local Bursary
    amount: "$500"
    requirements:
      - id: rural
        label: Lives in rural BC
        field: postalCode
        check: {kind: rural_bc_postal}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	g, ok := c.GetByID("local-bursary")
	if !ok {
		t.Fatalf("expected local-bursary")
	}
	if !Evaluate(g, profile.Profile{PostalCode: "V0N 1X0"}).Eligible {
		t.Fatalf("expected rural postal code to pass")
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	doc := `
grants:
  - id: a
    title: A
    colour: blue
`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatalf("expected unknown key to be rejected")
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{
			name:  "missing id",
			doc:   "grants:\n  - title: A\n",
			field: "id",
		},
		{
			name:  "duplicate id",
			doc:   "grants:\n  - {id: a, title: A}\n  - {id: a, title: B}\n",
			field: "id",
		},
		{
			name:  "missing title",
			doc:   "grants:\n  - {id: a}\n",
			field: "title",
		},
		{
			name:  "unknown kind",
			doc:   "grants:\n  - id: a\n    title: A\n    requirements:\n      - {id: r, label: R, field: trade, check: {kind: vibes}}\n",
			field: "requirements[0].check.kind",
		},
		{
			name:  "unknown field",
			doc:   "grants:\n  - id: a\n    title: A\n    requirements:\n      - {id: r, label: R, check: {kind: present, field: shoeSize}}\n",
			field: "requirements[0].check.field",
		},
		{
			name:  "no field",
			doc:   "grants:\n  - id: a\n    title: A\n    requirements:\n      - {id: r, label: R, check: {kind: present}}\n",
			field: "requirements[0].check.field",
		},
		{
			name:  "empty options",
			doc:   "grants:\n  - id: a\n    title: A\n    requirements:\n      - {id: r, label: R, field: trade, check: {kind: includes_any}}\n",
			field: "requirements[0].check.options",
		},
		{
			name:  "zero limit",
			doc:   "grants:\n  - id: a\n    title: A\n    requirements:\n      - {id: r, label: R, field: annualFamilyNetIncome, check: {kind: income_at_most}}\n",
			field: "requirements[0].check.limit",
		},
		{
			name:  "unknown level",
			doc:   "grants:\n  - id: a\n    title: A\n    requirements:\n      - {id: r, label: R, field: trade, check: {kind: level_at_least, level: Wizard}}\n",
			field: "requirements[0].check.level",
		},
		{
			name:  "duplicate requirement",
			doc:   "grants:\n  - id: a\n    title: A\n    requirements:\n      - {id: r, label: R, field: trade, check: {kind: present}}\n      - {id: r, label: S, field: trade, check: {kind: present}}\n",
			field: "requirements[1].id",
		},
		{
			name:  "missing label",
			doc:   "grants:\n  - id: a\n    title: A\n    requirements:\n      - {id: r, field: trade, check: {kind: present}}\n",
			field: "requirements[0].label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatalf("expected validation error")
			}

			var errs ValidationErrors
			if !errors.As(err, &errs) {
				t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
			}
			for _, e := range errs {
				if e.Field == tt.field {
					return
				}
			}
			t.Fatalf("expected error on %s, got %v", tt.field, err)
		})
	}
}

func TestValidationAggregates(t *testing.T) {
	doc := "grants:\n  - {id: a}\n  - {title: B}\n"
	_, err := Parse([]byte(doc))

	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 problems, got %d: %v", len(errs), err)
	}
	if lines := strings.Split(err.Error(), "\n"); len(lines) != 2 {
		t.Fatalf("expected one line per problem, got %q", err.Error())
	}
}

func TestNewCatalogAcceptsFuncRequirements(t *testing.T) {
	c, err := NewCatalog([]*Grant{{
		ID:    "custom",
		Title: "Custom",
		Requirements: []*Requirement{{
			ID:    "named",
			Label: "Has a name",
			Func:  func(p profile.Profile) bool { return p.Name != "" },
		}},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g, _ := c.GetByID("custom")
	if Evaluate(g, profile.Default()).Eligible {
		t.Fatalf("expected empty name to fail")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(Default(), profile.Default())
	if s.Count != 0 || s.Total != 0 {
		t.Fatalf("expected no matches for empty profile, got %+v", s)
	}
	if len(s.Titles) != 1 || s.Titles[0] != NoMatchesHint {
		t.Fatalf("expected fallback title, got %v", s.Titles)
	}
	if s.Name != "Friend" || s.Role != "Share your apprenticeship" {
		t.Fatalf("unexpected greeting: %q / %q", s.Name, s.Role)
	}

	s = Summarize(Default(), scenarioProfile())
	if s.Count != 1 || s.Total != 3500 {
		t.Fatalf("expected one $3,500 match, got %+v", s)
	}
	if s.Titles[0] != "StrongerBC Future Skills Grant" {
		t.Fatalf("unexpected featured titles %v", s.Titles)
	}

	p := profile.Profile{Name: " Ada ", Trade: "Electrician", ApprenticeshipLevel: "Level 2"}
	s = Summarize(Default(), p)
	if s.Name != "Ada" || s.Role != "Level 2 • Electrician" {
		t.Fatalf("unexpected greeting: %q / %q", s.Name, s.Role)
	}
}

func TestSummarizeCapsFeaturedTitles(t *testing.T) {
	open := make([]*Grant, 0, 6)
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		open = append(open, &Grant{ID: id, Title: strings.ToUpper(id), Amount: "$100"})
	}
	c, err := NewCatalog(open)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := Summarize(c, profile.Default())
	if s.Count != 6 || s.Total != 600 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if strings.Join(s.Titles, ",") != "A,B,C,D" {
		t.Fatalf("expected first four titles, got %v", s.Titles)
	}
}
