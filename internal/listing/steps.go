package listing

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/spigell/grantmatch/internal/grants"
)

// Filter is a single derivation step over the list.
type Filter interface {
	Name() string
	Apply(items []*Item) ([]*Item, Step)
}

// Step describes the result of executing a derivation step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

func newStep(initial int, left []*Item) Step {
	return Step{Initial: initial, Dropped: initial - len(left), Left: len(left)}
}

// keep filters items in place order into a fresh slice.
func keep(items []*Item, pred func(*Item) bool) []*Item {
	out := make([]*Item, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

type searchFilter struct {
	query string
}

// NewSearch keeps items whose title or organization contains query, ignoring
// case. An empty query keeps everything.
func NewSearch(query string) Filter {
	return &searchFilter{query: strings.ToLower(strings.TrimSpace(query))}
}

func (f *searchFilter) Name() string { return "search" }

func (f *searchFilter) Apply(items []*Item) ([]*Item, Step) {
	initial := len(items)
	if f.query == "" {
		return items, newStep(initial, items)
	}

	left := keep(items, func(item *Item) bool {
		return strings.Contains(strings.ToLower(item.Grant.Title), f.query) ||
			strings.Contains(strings.ToLower(item.Grant.Organization), f.query)
	})
	return left, newStep(initial, left)
}

type tabFilter struct {
	tab Tab
	sub SubFilter
}

// NewTab narrows items to the selected tab.
func NewTab(tab Tab, sub SubFilter) Filter {
	return &tabFilter{tab: tab, sub: sub}
}

func (f *tabFilter) Name() string { return "tab" }

func (f *tabFilter) Apply(items []*Item) ([]*Item, Step) {
	initial := len(items)

	var left []*Item
	switch f.tab {
	case TabEligible:
		left = keep(items, func(item *Item) bool { return item.Eligible })
	case TabMyGrants:
		switch f.sub {
		case SubFilterSaved:
			left = keep(items, func(item *Item) bool { return item.Saved })
		case SubFilterApplied:
			left = keep(items, func(item *Item) bool { return item.Applied })
		default:
			left = keep(items, func(item *Item) bool { return item.Saved || item.Applied })
		}
	default:
		left = items
	}

	return left, newStep(initial, left)
}

type sortFilter struct {
	sort Sort
	now  time.Time
}

// NewSort orders items by the selected option. The active option filters
// instead of ordering. Orderings are stable, so ties keep catalog order.
func NewSort(sort Sort, now time.Time) Filter {
	return &sortFilter{sort: sort, now: now}
}

func (f *sortFilter) Name() string { return "sort" }

func (f *sortFilter) Apply(items []*Item) ([]*Item, Step) {
	initial := len(items)

	deadline := func(item *Item) int64 {
		return grants.DeadlineTimestamp(item.Grant.Deadline, f.now)
	}
	amount := func(item *Item) float64 {
		return item.Grant.AmountValue()
	}

	var left []*Item
	switch f.sort {
	case SortActive:
		left = keep(items, func(item *Item) bool { return item.Grant.Active })
	case SortNewest:
		left = sorted(items, func(a, b *Item) int { return cmp.Compare(deadline(b), deadline(a)) })
	case SortOldest:
		left = sorted(items, func(a, b *Item) int { return cmp.Compare(deadline(a), deadline(b)) })
	case SortAmountHigh:
		left = sorted(items, func(a, b *Item) int { return cmp.Compare(amount(b), amount(a)) })
	case SortAmountLow:
		left = sorted(items, func(a, b *Item) int { return cmp.Compare(amount(a), amount(b)) })
	default:
		left = items
	}

	return left, newStep(initial, left)
}

func sorted(items []*Item, compare func(a, b *Item) int) []*Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, compare)
	return out
}

type eligibleFirstFilter struct{}

// NewEligibleFirst moves eligible items ahead of the rest, keeping the order
// within each group.
func NewEligibleFirst() Filter {
	return &eligibleFirstFilter{}
}

func (f *eligibleFirstFilter) Name() string { return "eligible_first" }

func (f *eligibleFirstFilter) Apply(items []*Item) ([]*Item, Step) {
	out := make([]*Item, 0, len(items))
	out = append(out, keep(items, func(item *Item) bool { return item.Eligible })...)
	out = append(out, keep(items, func(item *Item) bool { return !item.Eligible })...)
	return out, newStep(len(items), out)
}

// Steps returns the derivation pipeline for q in execution order.
func Steps(q Query) []Filter {
	steps := []Filter{
		NewSearch(q.Search),
		NewTab(q.Tab, q.SubFilter),
		NewSort(q.Sort, q.now()),
	}
	if q.Tab != TabEligible && q.Tab != TabMyGrants {
		steps = append(steps, NewEligibleFirst())
	}
	return steps
}
