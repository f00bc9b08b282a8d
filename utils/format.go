package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount formats a count with English digit grouping, e.g. "1,234".
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// ShowingSummary returns "Showing S-E of L beans" for a zero-based start index,
// an exclusive end index and the filtered total.
// An empty result reads "Showing 0-0 of 0 beans".
func ShowingSummary(startIndex, endIndex, total int) string {
	first := startIndex + 1
	if total == 0 {
		first = 0
	}
	return printer.Sprintf("Showing %s-%s of %s beans", FormatCount(first), FormatCount(endIndex), FormatCount(total))
}

// AvailableSuffix returns " (N total available)"
func AvailableSuffix(total int) string {
	return printer.Sprintf(" (%s total available)", FormatCount(total))
}

// PageLabel returns " • Page C of T"
func PageLabel(current, total int) string {
	return printer.Sprintf(" • Page %d of %d", current, total)
}
