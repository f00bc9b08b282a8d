package query

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"beancatalog/models"
)

// sortLanguage is the collation used for name and group ordering.
var sortLanguage = language.English

// IsSortKey reports whether key selects a sort policy.
func IsSortKey(key string) bool {
	switch key {
	case models.SortByName, models.SortByGroup, models.SortBySugarFree:
		return true
	}
	return false
}

// Sort returns a sorted copy of items. The sort is stable, so records that
// compare equal keep their relative order. Empty or unknown keys return the
// input unchanged.
func Sort(items []models.Bean, sortKey string) []models.Bean {
	if !IsSortKey(sortKey) {
		return items
	}

	sorted := slices.Clone(items)

	switch sortKey {
	case models.SortByName:
		// Collators keep internal buffers and are not safe for concurrent use.
		c := collate.New(sortLanguage)
		slices.SortStableFunc(sorted, func(a, b models.Bean) int {
			return c.CompareString(a.FlavorName, b.FlavorName)
		})
	case models.SortByGroup:
		c := collate.New(sortLanguage)
		slices.SortStableFunc(sorted, func(a, b models.Bean) int {
			return c.CompareString(a.PrimaryGroup(), b.PrimaryGroup())
		})
	case models.SortBySugarFree:
		slices.SortStableFunc(sorted, func(a, b models.Bean) int {
			switch {
			case a.SugarFree == b.SugarFree:
				return 0
			case a.SugarFree:
				return -1
			default:
				return 1
			}
		})
	}

	return sorted
}

// SortStrings returns a collated copy of values, used for the group select.
func SortStrings(values []string) []string {
	sorted := slices.Clone(values)
	collate.New(sortLanguage).SortStrings(sorted)
	return sorted
}
