package query

// DefaultMaxVisiblePages is the number of numbered links shown around the current page.
const DefaultMaxVisiblePages = 5

// PageLink is one entry of the pagination window: a page number or an ellipsis marker.
type PageLink struct {
	Number   int
	Ellipsis bool
}

// VisiblePageWindow returns the page links for a pagination control.
//
// At most maxVisible numbered pages are centered on current; the window shifts
// near either end so it never leaves [1, total]. The first and last pages are
// always reachable: they are added outside the window when missing, separated
// by an ellipsis when there is a gap.
func VisiblePageWindow(current, total, maxVisible int) []PageLink {
	if total <= 0 {
		return nil
	}
	if maxVisible < 1 {
		maxVisible = DefaultMaxVisiblePages
	}
	current = max(1, min(current, total))

	startPage := max(1, current-maxVisible/2)
	endPage := min(total, startPage+maxVisible-1)
	if endPage-startPage < maxVisible-1 {
		startPage = max(1, endPage-maxVisible+1)
	}

	links := make([]PageLink, 0, maxVisible+4)
	if startPage > 1 {
		links = append(links, PageLink{Number: 1})
		if startPage > 2 {
			links = append(links, PageLink{Ellipsis: true})
		}
	}
	for i := startPage; i <= endPage; i++ {
		links = append(links, PageLink{Number: i})
	}
	if endPage < total {
		if endPage < total-1 {
			links = append(links, PageLink{Ellipsis: true})
		}
		links = append(links, PageLink{Number: total})
	}
	return links
}
