package grants

import (
	"strings"

	"github.com/spigell/grantmatch/internal/profile"
)

const (
	summaryFeatured = 4

	// NoMatchesHint is shown in place of featured titles when nothing matches.
	NoMatchesHint = "Complete your profile to unlock grant matches"

	defaultGreetingName = "Friend"
	defaultRole         = "Share your apprenticeship"
)

// Summary is the home-screen digest of a profile's matches.
type Summary struct {
	Name  string
	Role  string
	Count int
	// Total sums the amounts of every eligible grant. Amounts are read strictly
	// here, so "Up to $1,950" counts and anything unreadable adds nothing.
	Total      float64
	Titles     []string
	Completion float64
}

// Summarize evaluates every grant in c against p once.
func Summarize(c *Catalog, p profile.Profile) Summary {
	s := Summary{
		Name:       greetingName(p),
		Role:       roleText(p),
		Completion: p.Completion(),
	}

	for _, g := range c.grants {
		if !Evaluate(g, p).Eligible {
			continue
		}
		s.Count++
		if amount, ok := parseStrictNumber(g.Amount); ok {
			s.Total += amount
		}
		if len(s.Titles) < summaryFeatured {
			s.Titles = append(s.Titles, g.Title)
		}
	}

	if len(s.Titles) == 0 {
		s.Titles = []string{NoMatchesHint}
	}
	return s
}

func greetingName(p profile.Profile) string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return defaultGreetingName
}

func roleText(p profile.Profile) string {
	parts := make([]string, 0, 2)
	for _, part := range []string{p.ApprenticeshipLevel, p.Trade} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return defaultRole
	}
	return strings.Join(parts, " • ")
}
