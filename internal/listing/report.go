package listing

import "strconv"

// Counts are the badge numbers shown next to each tab.
type Counts struct {
	All      int
	Eligible int
	Saved    int
	Applied  int
}

// Count tallies items.
func Count(items []*Item) Counts {
	c := Counts{All: len(items)}
	for _, item := range items {
		if item.Eligible {
			c.Eligible++
		}
		if item.Saved {
			c.Saved++
		}
		if item.Applied {
			c.Applied++
		}
	}
	return c
}

// ReportByOrganization groups items by the organization offering them.
// Within a group, items keep their list order.
func ReportByOrganization(items []*Item) map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, item := range items {
		g := item.Grant
		report[g.Organization] = append(report[g.Organization], map[string]string{
			"id":       g.ID,
			"title":    g.Title,
			"amount":   g.Amount,
			"deadline": g.Deadline,
			"category": g.Category,
			"active":   strconv.FormatBool(g.Active),
			"eligible": strconv.FormatBool(item.Eligible),
			"saved":    strconv.FormatBool(item.Saved),
			"applied":  strconv.FormatBool(item.Applied),
		})
	}
	return report
}
