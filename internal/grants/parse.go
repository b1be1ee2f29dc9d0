package grants

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	notNumeric    = regexp.MustCompile(`[^0-9.]`)
	notDatePart   = regexp.MustCompile(`[^0-9/]`)
	leadingNumber = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)`)
)

// ParseAmount reads the leading number out of free text such as "Up to $3,500".
// Text without a number reads as 0.
func ParseAmount(amount string) float64 {
	match := leadingNumber.FindString(notNumeric.ReplaceAllString(amount, ""))
	if match == "" {
		return 0
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return value
}

// parseStrictNumber requires every digit and dot left in value to form one
// number, so "1.2.3" and "" are rejected.
func parseStrictNumber(value string) (float64, bool) {
	stripped := notNumeric.ReplaceAllString(value, "")
	if stripped == "" {
		return 0, false
	}
	number, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0, false
	}
	return number, true
}

// DeadlineTimestamp turns a free-text deadline into Unix milliseconds for
// sorting. Only the part after the last '-' is read, and only a "month/day"
// shape is understood; the year is always now's year. Anything else is 0.
//
// The heuristic is deliberately lossy: "Jul 14 - Aug 20" has no '/' and reads
// as 0, while "Spring (May 15) / Fall (Aug 30)" reads as month 15 and rolls
// into the next year.
func DeadlineTimestamp(deadline string, now time.Time) int64 {
	parts := strings.Split(deadline, "-")
	target := strings.TrimSpace(parts[len(parts)-1])
	if target == "" {
		target = deadline
	}
	if !strings.Contains(target, "/") {
		return 0
	}

	pieces := strings.Split(notDatePart.ReplaceAllString(target, ""), "/")
	if len(pieces) < 2 {
		return 0
	}

	month, ok := datePart(pieces[0])
	if !ok {
		return 0
	}
	day, ok := datePart(pieces[1])
	if !ok {
		return 0
	}

	return time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, now.Location()).UnixMilli()
}

// datePart reads an all-digit component; an empty one counts as zero.
func datePart(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
