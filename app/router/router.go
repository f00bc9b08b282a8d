package router

import (
	"net/http"

	"github.com/rs/zerolog"

	"beancatalog/app/controller"
)

type Controllers struct {
	Catalog *controller.CatalogController
	Image   *controller.ImageController
	Export  *controller.ExportController
	Sync    *controller.SyncController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every route on a new mux and wraps it with the
// request ID and access log middleware
func SetupRoutes(controllers *Controllers, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Catalog page and form submission
	mux.HandleFunc("/", controllers.Catalog.Index)
	mux.HandleFunc("/search", controllers.Catalog.Search)

	// Proxied bean images
	mux.HandleFunc("/images/", controllers.Image.GetBeanImage)

	// PDF export of the current view
	mux.HandleFunc("/export.pdf", controllers.Export.ExportPDF)

	// Refetch catalog and warm image cache
	mux.HandleFunc("/admin/sync", controllers.Sync.SyncCatalog)

	return RequestID(AccessLog(log)(mux))
}
