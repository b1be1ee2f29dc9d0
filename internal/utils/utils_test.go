package utils

import "testing"

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "StrongerBC Future Skills Grant",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "WorkBC",
			limit:  10,
			expect: "WorkBC",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "Masonry Institute of BC",
			limit:  7,
			expect: "Masonry...",
		},
		{
			name:   "trims surrounding whitespace",
			input:  "  spaced  ",
			limit:  5,
			expect: "space...",
		},
		{
			name:   "collapses line breaks and tabs",
			input:  "Northwest\nIndigenous\t\tCouncil",
			limit:  40,
			expect: "Northwest Indigenous Council",
		},
		{
			name:   "collapses before cutting",
			input:  "Masonry   Institute",
			limit:  9,
			expect: "Masonry I...",
		},
		{
			name:   "counts runes not bytes",
			input:  "Métis Nation",
			limit:  5,
			expect: "Métis...",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Truncate(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	tests := map[float64]string{
		0:      "$0",
		500:    "$500",
		3500:   "$3,500",
		26250:  "$26,250",
		1000.5: "$1,000.5",
	}
	for value, want := range tests {
		if got := FormatAmount(value); got != want {
			t.Fatalf("FormatAmount(%v) = %q, want %q", value, got, want)
		}
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()

	if got := Percent(2.0 / 23.0); got != "9%" {
		t.Fatalf("expected 9%%, got %q", got)
	}
	if got := Percent(1); got != "100%" {
		t.Fatalf("expected 100%%, got %q", got)
	}
}
