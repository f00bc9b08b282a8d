package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beancatalog/models"
)

// largeCatalog returns n beans alternating between two groups.
func largeCatalog(n int) models.CatalogPage {
	page := models.CatalogPage{TotalCount: n, PageSize: 200, CurrentPage: 1, TotalPages: 1}
	for i := 1; i <= n; i++ {
		group := "Official Flavors"
		if i%2 == 0 {
			group = "Sours"
		}
		page.Items = append(page.Items, models.Bean{
			BeanID:          i,
			FlavorName:      fmt.Sprintf("Flavor %02d", i),
			GroupName:       []string{group},
			BackgroundColor: "#00FF00",
			SugarFree:       i%3 == 0,
		})
	}
	return page
}

type fixedStates map[int]models.ImageState

func (f fixedStates) State(beanID int) models.ImageState {
	if s, ok := f[beanID]; ok {
		return s
	}
	return models.ImageLoading
}

func TestPageService_FirstPage(t *testing.T) {
	page := largeCatalog(40)
	svc := NewPageService(&stubSource{page: &page}, nil, 6, zerolog.Nop())

	view := svc.BuildView(context.Background(), models.ViewState{Page: 1})

	require.False(t, view.HasError())
	assert.Len(t, view.Cards, 6)
	assert.Equal(t, "Showing 1-6 of 40 beans", view.Summary)
	assert.Empty(t, view.Available)
	assert.Equal(t, " • Page 1 of 7", view.PageLabel)
	assert.Empty(t, view.PreviousHref)
	assert.Equal(t, "/?page=2", view.NextHref)
	assert.Equal(t, []string{"Official Flavors", "Sours"}, view.Groups)

	var numbers []string
	for _, p := range view.Pages {
		if p.Ellipsis {
			numbers = append(numbers, "...")
			continue
		}
		numbers = append(numbers, fmt.Sprint(p.Number))
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "...", "7"}, numbers)
	assert.True(t, view.Pages[0].Current)
	assert.Equal(t, "/?page=7", view.Pages[len(view.Pages)-1].Href)
}

func TestPageService_FilterShowsBothTotals(t *testing.T) {
	page := largeCatalog(40)
	svc := NewPageService(&stubSource{page: &page}, nil, 6, zerolog.Nop())

	view := svc.BuildView(context.Background(), models.ViewState{FilterBy: "sour", SortBy: "name", Page: 4})

	assert.Equal(t, "Showing 19-20 of 20 beans", view.Summary)
	assert.Equal(t, " (40 total available)", view.Available)
	assert.Equal(t, " • Page 4 of 4", view.PageLabel)
	assert.Equal(t, "/?filterBy=sour&page=3&sortBy=name", view.PreviousHref)
	assert.Empty(t, view.NextHref)
	assert.Contains(t, view.Groups, "sour")
	for _, card := range view.Cards {
		assert.Equal(t, "Sours", card.PrimaryGroup())
	}
}

func TestPageService_ClampsPageAndHidesSinglePageLabel(t *testing.T) {
	page := sampleCatalog()
	svc := NewPageService(&stubSource{page: &page}, nil, 0, zerolog.Nop())

	view := svc.BuildView(context.Background(), models.ViewState{Page: 99})

	assert.Equal(t, 6, svc.PageSize())
	assert.Equal(t, 1, view.CurrentPage)
	assert.Equal(t, "Showing 1-2 of 2 beans", view.Summary)
	assert.Empty(t, view.PageLabel)
	assert.Len(t, view.Pages, 1)
}

func TestPageService_CardsCarryImageState(t *testing.T) {
	page := sampleCatalog()
	page.Items[1].BackgroundColor = "pink-ish"
	states := fixedStates{1: models.ImageFailed}
	svc := NewPageService(&stubSource{page: &page}, states, 6, zerolog.Nop())

	view := svc.BuildView(context.Background(), models.ViewState{Page: 1})

	require.Len(t, view.Cards, 2)
	cherry := view.Cards[0]
	assert.Equal(t, "/images/1", cherry.ImageHref)
	assert.Equal(t, "Cherry jelly bean", cherry.Alt)
	assert.Equal(t, "Cherry", cherry.FallbackLabel)
	assert.True(t, cherry.Failed())
	assert.Equal(t, "#FF0000", cherry.Swatch)

	assert.False(t, view.Cards[1].Failed())
	assert.Equal(t, "#9CA3AF", view.Cards[1].Swatch)
}

func TestPageService_ErrorView(t *testing.T) {
	svc := NewPageService(&stubSource{err: ErrDataUnavailable}, nil, 6, zerolog.Nop())

	view := svc.BuildView(context.Background(), models.ViewState{FilterBy: "Sours", Page: 1})

	assert.True(t, view.HasError())
	assert.Equal(t, "Error loading beans data: Unable to load bean data. Please try again later.", view.Error)
	assert.Equal(t, []string{"Sours"}, view.Groups)
	assert.Empty(t, view.Cards)
}
