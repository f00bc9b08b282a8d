package models

// Sort keys accepted in the sortBy query parameter
const (
	SortByName      = "name"
	SortByGroup     = "flavor group"
	SortBySugarFree = "sugar-free status"
)

// SortOption is one entry of the sort select
type SortOption struct {
	Value string
	Label string
}

// SortOptions lists the sort select entries in display order.
// The empty value keeps the upstream order.
var SortOptions = []SortOption{
	{Value: "", Label: "Default Order"},
	{Value: SortByName, Label: "Name"},
	{Value: SortByGroup, Label: "Flavor Group"},
	{Value: SortBySugarFree, Label: "Sugar-Free Status"},
}

// ViewState holds the query parameters of one page request
type ViewState struct {
	FilterBy string `json:"filterBy,omitempty"`
	SortBy   string `json:"sortBy,omitempty"`
	Page     int    `json:"page"`
}

// PageNumber is a rendered pagination entry. Ellipsis entries carry no number.
type PageNumber struct {
	Number   int
	Ellipsis bool
	Current  bool
	Href     string
}

// BeanCard is one rendered bean with its image link and fallback swatch data
type BeanCard struct {
	Bean
	ImageHref     string
	Alt           string     // "<flavor> jelly bean"
	ImageState    ImageState // Failed renders the colour swatch instead of the image
	FallbackLabel string     // first word of Alt, shown on the swatch
	Swatch        string     // CSS colour of the swatch
}

// Failed reports whether the card shows the swatch instead of the image
func (c BeanCard) Failed() bool {
	return c.ImageState == ImageFailed
}

// PageView represents the data structure passed to the catalog template
type PageView struct {
	State        ViewState
	Groups       []string
	SortOptions  []SortOption
	Cards        []BeanCard
	Error        string // set when the catalog could not be loaded
	Summary      string // "Showing 1-6 of 114 beans"
	Available    string // " (114 total available)" when a filter is active
	PageLabel    string // " • Page 1 of 19" when there is more than one page
	CurrentPage  int
	TotalPages   int
	PreviousHref string
	NextHref     string
	Pages        []PageNumber
}

// HasError reports whether the view is an error view
func (v PageView) HasError() bool {
	return v.Error != ""
}
