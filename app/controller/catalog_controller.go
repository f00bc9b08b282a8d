package controller

import (
	"net/http"

	"github.com/rs/zerolog"

	"beancatalog/models"
	"beancatalog/service"
	"beancatalog/utils"
)

// pageCacheControl lets shared caches keep a rendered page for the revalidate window
const pageCacheControl = "public, s-maxage=3600"

// CatalogController handles HTTP requests for the catalog page
type CatalogController struct {
	pageService   *service.PageService
	renderService *service.RenderService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(pageService *service.PageService, renderService *service.RenderService) *CatalogController {
	return &CatalogController{
		pageService:   pageService,
		renderService: renderService,
	}
}

// Index handles GET /?filterBy=&sortBy=&page=
func (c *CatalogController) Index(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		log.Warn().Str("method", r.Method).Msg("❌ Index: Method not allowed")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	state := utils.ParseViewState(r.URL.Query())
	view := c.pageService.BuildView(r.Context(), state)
	if view.HasError() {
		log.Error().Str("filterBy", state.FilterBy).Str("sortBy", state.SortBy).Msg("❌ Index: Catalog unavailable, rendering error view")
	}

	html, err := c.renderService.RenderCatalogHTML(view)
	if err != nil {
		log.Error().Err(err).Msg("❌ Index: Error rendering HTML")
		http.Error(w, "Failed to render catalog", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if !view.HasError() {
		w.Header().Set("Cache-Control", pageCacheControl)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(html); err != nil {
		log.Error().Err(err).Msg("❌ Index: Error writing HTML response")
	}
}

// Search handles GET /search, the form submission.
// Empty keys are dropped and the page is reset to 1.
func (c *CatalogController) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	state := utils.ParseViewState(r.Form)
	target := utils.PageHref(state.FilterBy, state.SortBy, 1)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// viewState returns the state of the page a request refers to
func viewState(r *http.Request) models.ViewState {
	return utils.ParseViewState(r.URL.Query())
}
