package models

import "time"

// Bean represents a single flavor record in the catalog
type Bean struct {
	BeanID          int      `json:"beanId"`
	GroupName       []string `json:"groupName"` // First entry is the canonical group for sorting
	Ingredients     []string `json:"ingredients"`
	FlavorName      string   `json:"flavorName"`
	Description     string   `json:"description"`
	ColorGroup      string   `json:"colorGroup"`
	BackgroundColor string   `json:"backgroundColor"` // Hex literal (e.g., "#FF0000")
	ImageURL        string   `json:"imageUrl"`
	GlutenFree      bool     `json:"glutenFree"`
	SugarFree       bool     `json:"sugarFree"`
	Seasonal        bool     `json:"seasonal"`
	Kosher          bool     `json:"kosher"`
}

// PrimaryGroup returns the first group name, or "" when the bean has none
func (b Bean) PrimaryGroup() string {
	if len(b.GroupName) == 0 {
		return ""
	}
	return b.GroupName[0]
}

// CatalogPage represents one response of the upstream catalog endpoint.
// Counts are reported by the upstream API and never recomputed.
type CatalogPage struct {
	TotalCount  int    `json:"totalCount"`
	PageSize    int    `json:"pageSize"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	Items       []Bean `json:"items"`
}

// CatalogSnapshot is a CatalogPage together with the time it was fetched
type CatalogSnapshot struct {
	Page      CatalogPage `json:"page"`
	FetchedAt time.Time   `json:"fetchedAt"`
}

// IsFresh reports whether the snapshot is still inside its revalidate window
func (s CatalogSnapshot) IsFresh(now time.Time, ttl time.Duration) bool {
	return now.Before(s.FetchedAt.Add(ttl))
}
