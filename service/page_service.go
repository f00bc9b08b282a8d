package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"beancatalog/models"
	"beancatalog/query"
	"beancatalog/utils"
)

// ImageStateReader reports the load state of a proxied bean image
type ImageStateReader interface {
	State(beanID int) models.ImageState
}

// PageService builds the catalog page view from the cached catalog
type PageService struct {
	source   CatalogSource
	images   ImageStateReader
	pageSize int
	log      zerolog.Logger
}

// NewPageService creates a new PageService. images may be nil.
func NewPageService(source CatalogSource, images ImageStateReader, pageSize int, log zerolog.Logger) *PageService {
	if pageSize < 1 {
		pageSize = query.DefaultPageSize
	}
	return &PageService{
		source:   source,
		images:   images,
		pageSize: pageSize,
		log:      log.With().Str("component", "page_service").Logger(),
	}
}

// PageSize returns the number of beans per page
func (s *PageService) PageSize() int {
	return s.pageSize
}

// BuildView loads the catalog and returns the view for the given state.
// A failed load yields an error view that still carries the form state.
func (s *PageService) BuildView(ctx context.Context, state models.ViewState) models.PageView {
	view := models.PageView{
		State:       state,
		SortOptions: models.SortOptions,
	}

	catalog, err := s.source.FetchCatalog(ctx)
	if err != nil {
		view.Error = fmt.Sprintf("Error loading beans data: %s", err.Error())
		view.Groups = withCurrent(nil, state.FilterBy)
		return view
	}

	result := query.SelectPage(catalog.Items, state.FilterBy, state.SortBy, state.Page, s.pageSize)
	s.log.Debug().
		Str("filterBy", state.FilterBy).
		Str("sortBy", state.SortBy).
		Int("page", result.CurrentPage).
		Int("matched", result.TotalCount).
		Msg("Catalog page selected")

	view.Groups = withCurrent(query.SortStrings(query.GroupNames(catalog.Items)), state.FilterBy)
	view.Cards = s.cards(result.DisplayItems)
	view.Summary = utils.ShowingSummary(result.StartIndex, result.EndIndex, result.TotalCount)
	if state.FilterBy != "" {
		view.Available = utils.AvailableSuffix(catalog.TotalCount)
	}
	view.CurrentPage = result.CurrentPage
	view.TotalPages = result.TotalPages
	if result.TotalPages > 1 {
		view.PageLabel = utils.PageLabel(result.CurrentPage, result.TotalPages)
	}
	if result.HasPrevious() {
		view.PreviousHref = utils.PageHref(state.FilterBy, state.SortBy, result.CurrentPage-1)
	}
	if result.HasNext() {
		view.NextHref = utils.PageHref(state.FilterBy, state.SortBy, result.CurrentPage+1)
	}
	for _, link := range query.VisiblePageWindow(result.CurrentPage, result.TotalPages, query.DefaultMaxVisiblePages) {
		if link.Ellipsis {
			view.Pages = append(view.Pages, models.PageNumber{Ellipsis: true})
			continue
		}
		view.Pages = append(view.Pages, models.PageNumber{
			Number:  link.Number,
			Current: link.Number == result.CurrentPage,
			Href:    utils.PageHref(state.FilterBy, state.SortBy, link.Number),
		})
	}
	return view
}

func (s *PageService) cards(beans []models.Bean) []models.BeanCard {
	cards := make([]models.BeanCard, 0, len(beans))
	for _, bean := range beans {
		alt := bean.FlavorName + " jelly bean"
		card := models.BeanCard{
			Bean:          bean,
			ImageHref:     fmt.Sprintf("/images/%d", bean.BeanID),
			Alt:           alt,
			ImageState:    models.ImageLoading,
			FallbackLabel: strings.Fields(alt)[0],
			Swatch:        bean.BackgroundColor,
		}
		if _, err := utils.ParseHexColor(bean.BackgroundColor); err != nil {
			card.Swatch = utils.FallbackColor
		}
		if s.images != nil {
			card.ImageState = s.images.State(bean.BeanID)
		}
		cards = append(cards, card)
	}
	return cards
}

// withCurrent makes sure the selected filter stays selectable in the form
func withCurrent(groups []string, current string) []string {
	if current == "" || slices.Contains(groups, current) {
		return groups
	}
	return append(groups, current)
}
