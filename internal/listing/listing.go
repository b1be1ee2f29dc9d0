// Package listing derives the grant list shown to a user from the catalog, a
// profile snapshot, the user's saved/applied flags and the list selectors.
package listing

import (
	"strings"
	"time"

	"github.com/spigell/grantmatch/internal/grants"
)

type Tab string

const (
	TabAll      Tab = "All"
	TabEligible Tab = "Eligible"
	TabMyGrants Tab = "My Grants"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabAll, TabEligible, TabMyGrants}

// ParseTab maps a selector onto a tab. Anything unrecognised is All.
func ParseTab(value string) Tab {
	switch normalizeSelector(value) {
	case "eligible":
		return TabEligible
	case "mygrants", "my":
		return TabMyGrants
	default:
		return TabAll
	}
}

type SubFilter string

const (
	SubFilterNone    SubFilter = ""
	SubFilterSaved   SubFilter = "Saved"
	SubFilterApplied SubFilter = "Applied"
)

// ParseSubFilter maps a selector onto a My Grants sub-filter. Anything
// unrecognised means no sub-filter.
func ParseSubFilter(value string) SubFilter {
	switch normalizeSelector(value) {
	case "saved":
		return SubFilterSaved
	case "applied":
		return SubFilterApplied
	default:
		return SubFilterNone
	}
}

type Sort string

const (
	SortAll        Sort = "all"
	SortActive     Sort = "active"
	SortNewest     Sort = "newest"
	SortOldest     Sort = "oldest"
	SortAmountHigh Sort = "amountHigh"
	SortAmountLow  Sort = "amountLow"
)

var sortLabels = map[Sort]string{
	SortAll:        "All",
	SortAmountHigh: "Amount highest to lowest",
	SortAmountLow:  "Amount lowest to highest",
	SortActive:     "Active grants",
	SortNewest:     "Newest to oldest",
	SortOldest:     "Oldest to newest",
}

// Sorts lists the sort options in the order the picker shows them.
var Sorts = []Sort{SortAll, SortAmountHigh, SortAmountLow, SortActive, SortNewest, SortOldest}

// ParseSort maps a selector onto a sort option. Anything unrecognised is all.
func ParseSort(value string) Sort {
	normalized := normalizeSelector(value)
	for _, s := range Sorts {
		if normalizeSelector(string(s)) == normalized {
			return s
		}
	}
	return SortAll
}

// Label is the text the sort picker shows.
func (s Sort) Label() string {
	if label, ok := sortLabels[s]; ok {
		return label
	}
	return sortLabels[SortAll]
}

func normalizeSelector(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(value)
}

// Query holds the list selectors. A zero Now means the current time.
type Query struct {
	Search    string
	Tab       Tab
	SubFilter SubFilter
	Sort      Sort
	Now       time.Time
}

func (q Query) now() time.Time {
	if q.Now.IsZero() {
		return time.Now()
	}
	return q.Now
}

// SectionTitle is the heading rendered above the list.
func (q Query) SectionTitle() string {
	switch q.Tab {
	case TabMyGrants:
		if q.SubFilter == SubFilterApplied {
			return "Applied grants"
		}
		return "Saved grants"
	case TabEligible:
		return "Eligible grants for you"
	default:
		return "Suggested grants for you"
	}
}

// Item is one row of the derived list.
type Item struct {
	Grant    *grants.Grant
	Eligible bool
	Saved    bool
	Applied  bool
}

// IDs returns the grant ids of items in order.
func IDs(items []*Item) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.Grant.ID)
	}
	return ids
}
