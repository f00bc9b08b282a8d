package query

import (
	"strings"

	"beancatalog/models"
)

// DefaultPageSize is the number of beans shown per page.
const DefaultPageSize = 6

// PageResult is the paginated view over a filtered and sorted collection.
type PageResult struct {
	DisplayItems []models.Bean `json:"displayItems"`
	TotalPages   int           `json:"totalPages"`
	CurrentPage  int           `json:"currentPage"`
	StartIndex   int           `json:"startIndex"`
	EndIndex     int           `json:"endIndex"`
	TotalCount   int           `json:"totalCount"` // count after filtering
}

// HasPrevious reports whether a previous page exists.
func (r PageResult) HasPrevious() bool {
	return r.CurrentPage > 1
}

// HasNext reports whether a next page exists.
func (r PageResult) HasNext() bool {
	return r.CurrentPage < r.TotalPages
}

// SelectPage filters items by group, sorts them and returns the requested page.
// A pageSize below 1 is replaced by DefaultPageSize.
func SelectPage(items []models.Bean, filterKey, sortKey string, pageNumber, pageSize int) PageResult {
	filtered := Filter(items, filterKey)
	sorted := Sort(filtered, sortKey)
	return Paginate(sorted, pageNumber, pageSize)
}

// Filter keeps beans with at least one group name containing filterKey,
// compared case-insensitively. An empty key keeps everything.
func Filter(items []models.Bean, filterKey string) []models.Bean {
	if filterKey == "" {
		return items
	}

	needle := strings.ToLower(filterKey)
	out := make([]models.Bean, 0, len(items))
	for _, bean := range items {
		for _, group := range bean.GroupName {
			if strings.Contains(strings.ToLower(group), needle) {
				out = append(out, bean)
				break
			}
		}
	}
	return out
}

// Paginate slices items into the requested page. pageNumber is clamped into
// [1, max(1, totalPages)].
func Paginate(items []models.Bean, pageNumber, pageSize int) PageResult {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	currentPage := min(pageNumber, totalPages)
	currentPage = max(1, currentPage)

	startIndex := (currentPage - 1) * pageSize
	endIndex := min(startIndex+pageSize, total)

	display := make([]models.Bean, endIndex-startIndex)
	copy(display, items[startIndex:endIndex])

	return PageResult{
		DisplayItems: display,
		TotalPages:   totalPages,
		CurrentPage:  currentPage,
		StartIndex:   startIndex,
		EndIndex:     endIndex,
		TotalCount:   total,
	}
}

// GroupNames returns the distinct group names of items in first-seen order.
func GroupNames(items []models.Bean) []string {
	seen := make(map[string]bool)
	var groups []string
	for _, bean := range items {
		for _, group := range bean.GroupName {
			if group == "" || seen[group] {
				continue
			}
			seen[group] = true
			groups = append(groups, group)
		}
	}
	return groups
}
