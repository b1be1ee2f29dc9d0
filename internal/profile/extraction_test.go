package profile

import "testing"

func TestParseExtraction(t *testing.T) {
	raw := "```json\n" + `{
  "first_name": " Maya ",
  "last_name": "Singh",
  "province": "BC",
  "postal_code": "V0N 1B0",
  "household_size": 3,
  "school_name": "Centennial Secondary",
  "apprenticeship_level": "Second year apprentice",
  "guardian_name": null
}` + "\n```"

	ex, err := ParseExtraction(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base := Profile{ProfileImageURI: "file://me.png", Trade: "Plumber"}
	p := ex.ApplyTo(base)

	if p.Name != "Maya Singh" {
		t.Fatalf("expected joined name, got %q", p.Name)
	}
	if p.HouseholdSize != "3" {
		t.Fatalf("expected numeric value as text, got %q", p.HouseholdSize)
	}
	if p.HighSchoolName != "Centennial Secondary" {
		t.Fatalf("expected school_name to map to high school, got %q", p.HighSchoolName)
	}
	if p.ApprenticeshipLevel != "Level 2" {
		t.Fatalf("expected normalized level, got %q", p.ApprenticeshipLevel)
	}
	if p.ProfileImageURI != "file://me.png" {
		t.Fatalf("profile picture must survive an import")
	}
	if p.Trade != "" {
		t.Fatalf("missing keys overwrite with empty values, got %q", p.Trade)
	}
	if p.GuardianName != "" {
		t.Fatalf("null values must read as empty, got %q", p.GuardianName)
	}
}

func TestParseExtractionErrors(t *testing.T) {
	for _, raw := range []string{
		"",
		"```\n```",
		"not json",
		`{"province": ["BC", "AB"]}`,
		`{"first_name": {"given": "Maya"}}`,
	} {
		if _, err := ParseExtraction(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestNormalizeApprenticeshipLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect string
	}{
		{"", ""},
		{"Red Seal Journeyperson", "Journeyman"},
		{"journeyman electrician", "Journeyman"},
		{"4th year", "Level 4"},
		{"Third Year Apprentice", "Level 3"},
		{"level 2", "Level 2"},
		{"1st", "Level 1"},
		{"  Foundation  ", "Foundation"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeApprenticeshipLevel(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestValidateExtractionAllowsUnknownKeys(t *testing.T) {
	err := ValidateExtraction(map[string]any{
		"province":   "BC",
		"confidence": map[string]any{"province": 0.9},
	})
	if err != nil {
		t.Fatalf("unknown keys should pass: %v", err)
	}
}
