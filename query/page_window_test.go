package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// render turns links into a compact form like "1 … 4 5 6 7 8 … 20".
func render(links []PageLink) []any {
	out := make([]any, 0, len(links))
	for _, l := range links {
		if l.Ellipsis {
			out = append(out, "…")
			continue
		}
		out = append(out, l.Number)
	}
	return out
}

func TestVisiblePageWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []any
	}{
		{name: "no pages", current: 1, total: 0, want: []any{}},
		{name: "single page", current: 1, total: 1, want: []any{1}},
		{name: "fewer pages than window", current: 2, total: 3, want: []any{1, 2, 3}},
		{name: "exactly window", current: 3, total: 5, want: []any{1, 2, 3, 4, 5}},
		{name: "start of long range", current: 1, total: 20, want: []any{1, 2, 3, 4, 5, "…", 20}},
		{name: "centered", current: 10, total: 20, want: []any{1, "…", 8, 9, 10, 11, 12, "…", 20}},
		{name: "end of long range", current: 20, total: 20, want: []any{1, "…", 16, 17, 18, 19, 20}},
		{name: "adjacent to first page", current: 4, total: 20, want: []any{1, 2, 3, 4, 5, 6, "…", 20}},
		{name: "adjacent to last page", current: 17, total: 20, want: []any{1, "…", 15, 16, 17, 18, 19, 20}},
		{name: "current beyond total clamps", current: 50, total: 7, want: []any{1, "…", 3, 4, 5, 6, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisiblePageWindow(tt.current, tt.total, DefaultMaxVisiblePages)
			assert.Equal(t, tt.want, render(got))
		})
	}
}

func TestVisiblePageWindow_NumberedLinksBounded(t *testing.T) {
	for total := 1; total <= 30; total++ {
		for current := 1; current <= total; current++ {
			links := VisiblePageWindow(current, total, 5)

			var numbered []int
			for _, l := range links {
				if !l.Ellipsis {
					numbered = append(numbered, l.Number)
				}
			}

			assert.Contains(t, numbered, current)
			assert.Equal(t, 1, numbered[0])
			assert.Equal(t, total, numbered[len(numbered)-1])
			// window plus optional first/last page
			assert.LessOrEqual(t, len(numbered), 7)
			for _, n := range numbered {
				assert.GreaterOrEqual(t, n, 1)
				assert.LessOrEqual(t, n, total)
			}
		}
	}
}
