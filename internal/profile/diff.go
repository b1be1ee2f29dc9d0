package profile

import (
	"encoding/json"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff renders a unified diff between two profiles as indented JSON. Identical
// profiles yield an empty string.
func Diff(before, after Profile) (string, error) {
	if before == after {
		return "", nil
	}

	a, err := json.MarshalIndent(before, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode current profile: %w", err)
	}
	b, err := json.MarshalIndent(after, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode imported profile: %w", err)
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: "current",
		ToFile:   "imported",
		Context:  1,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff profiles: %w", err)
	}
	return text, nil
}
