package grants

import (
	"strings"
	"unicode"
)

// Levels is the apprenticeship scale, lowest first.
var Levels = []string{
	"Foundation",
	"Level 1",
	"Level 2",
	"Level 3",
	"Level 4",
	"Red Seal",
}

var ruralBCPostalPrefixes = []string{
	"V0A", "V0B", "V0C", "V0E", "V0G", "V0H", "V0J", "V0K", "V0L", "V0M",
	"V0N", "V0P", "V0R", "V0S", "V0T", "V0V", "V0W", "V0X", "V0Y", "V0Z",
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Present passes when the value holds anything besides whitespace.
func Present(value string) bool {
	return strings.TrimSpace(value) != ""
}

// IncludesAny passes when the normalized value contains one of the options.
// Matching is case-insensitive substring containment only.
func IncludesAny(value string, options []string) bool {
	normalized := normalize(value)
	if normalized == "" {
		return false
	}
	for _, option := range options {
		if strings.Contains(normalized, normalize(option)) {
			return true
		}
	}
	return false
}

// IncomeAtMost passes when the income reads as a number no greater than limit.
// Blank or unreadable income fails.
func IncomeAtMost(value string, limit float64) bool {
	income, ok := parseStrictNumber(value)
	if !ok {
		return false
	}
	return income <= limit
}

// IsBritishColumbia is a loose province match. Anything ending in "bc" counts.
func IsBritishColumbia(province string) bool {
	normalized := normalize(province)
	return strings.Contains(normalized, "british columbia") ||
		normalized == "bc" ||
		strings.HasSuffix(normalized, "bc")
}

// LevelIndex resolves a free-text level onto Levels. It returns -1 when no
// level label is contained in the value.
func LevelIndex(value string) int {
	normalized := normalize(value)
	for idx, level := range Levels {
		if strings.Contains(normalized, normalize(level)) {
			return idx
		}
	}
	return -1
}

// LevelAtLeast passes when value resolves to a level at or above required.
func LevelAtLeast(value, required string) bool {
	current := LevelIndex(value)
	needed := LevelIndex(required)
	if current < 0 || needed < 0 {
		return false
	}
	return current >= needed
}

// IsRuralBCPostalCode matches postal codes in BC's rural V0 forward sortation areas.
func IsRuralBCPostalCode(postal string) bool {
	normalized := strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, postal))

	if !strings.HasPrefix(normalized, "V0") {
		return false
	}
	for _, prefix := range ruralBCPostalPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return true
		}
	}
	return false
}
