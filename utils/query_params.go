package utils

import (
	"net/url"
	"strconv"
	"strings"

	"beancatalog/models"
)

// Query parameter names of the catalog page.
const (
	ParamFilterBy = "filterBy"
	ParamSortBy   = "sortBy"
	ParamPage     = "page"
)

// ParsePage parses the page parameter. Missing or non-numeric values become 1;
// out-of-range numbers are left for the pagination step to clamp.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return page
}

// ParseViewState reads filterBy, sortBy and page from a query string.
// filterBy is kept verbatim: only the empty string means no filter.
func ParseViewState(values url.Values) models.ViewState {
	return models.ViewState{
		FilterBy: values.Get(ParamFilterBy),
		SortBy:   strings.TrimSpace(values.Get(ParamSortBy)),
		Page:     ParsePage(values.Get(ParamPage)),
	}
}

// EncodeViewState encodes a view state as a query string.
// filterBy and sortBy are omitted when empty; page is always present.
func EncodeViewState(state models.ViewState) string {
	values := url.Values{}
	if state.FilterBy != "" {
		values.Set(ParamFilterBy, state.FilterBy)
	}
	if state.SortBy != "" {
		values.Set(ParamSortBy, state.SortBy)
	}
	values.Set(ParamPage, strconv.Itoa(state.Page))
	return values.Encode()
}

// PageHref returns the catalog link for the given filter, sort and page
func PageHref(filterBy, sortBy string, page int) string {
	return "/?" + EncodeViewState(models.ViewState{FilterBy: filterBy, SortBy: sortBy, Page: page})
}
