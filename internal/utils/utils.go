package utils

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Truncate fits s into one table cell: runs of whitespace, line breaks
// included, become single spaces and the result is cut to limit runes with an
// ellipsis.
func Truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// FormatAmount renders a dollar total with thousands separators, e.g. "$3,500".
func FormatAmount(v float64) string {
	return "$" + printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Percent renders a 0..1 share as a whole percentage.
func Percent(share float64) string {
	return printer.Sprintf("%d%%", int(share*100+0.5))
}
