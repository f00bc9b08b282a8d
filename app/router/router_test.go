package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beancatalog/app/controller"
	"beancatalog/models"
	"beancatalog/service"
)

type staticSource struct{}

func (staticSource) FetchCatalog(context.Context) (*models.CatalogPage, error) {
	return &models.CatalogPage{TotalCount: 1, Items: []models.Bean{{BeanID: 7, FlavorName: "Licorice"}}}, nil
}

type nopExporter struct{}

func (nopExporter) GeneratePDF(context.Context, models.ViewState) ([]byte, error) {
	return []byte("%PDF"), nil
}

type nopSync struct{}

func (nopSync) SyncCatalog(context.Context) (service.SyncStats, error) {
	return service.SyncStats{}, nil
}

func newTestRouter(t *testing.T, logOut *bytes.Buffer) http.Handler {
	t.Helper()
	renderer, err := service.NewRenderService()
	require.NoError(t, err)

	images := service.NewImageService(staticSource{}, nil, 0, t.TempDir(), 16, nil, zerolog.Nop())
	controllers := &Controllers{
		Catalog: controller.NewCatalogController(service.NewPageService(staticSource{}, images, 6, zerolog.Nop()), renderer),
		Image:   controller.NewImageController(images),
		Export:  controller.NewExportController(nopExporter{}),
		Sync:    controller.NewSyncController(nopSync{}, "test-token"),
	}
	return SetupRoutes(controllers, zerolog.New(logOut))
}

func TestRoutes(t *testing.T) {
	handler := newTestRouter(t, &bytes.Buffer{})

	tests := []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/ping", http.StatusOK},
		{http.MethodPost, "/ping", http.StatusMethodNotAllowed},
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/search?filterBy=x", http.StatusSeeOther},
		{http.MethodGet, "/images/7", http.StatusOK},
		{http.MethodGet, "/export.pdf", http.StatusOK},
		{http.MethodPost, "/admin/sync", http.StatusOK},
		{http.MethodGet, "/missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			req.Header.Set(controller.AdminTokenHeader, "test-token")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestPing(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, &bytes.Buffer{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRequestIDAndAccessLog(t *testing.T) {
	var logs bytes.Buffer
	handler := newTestRouter(t, &logs)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &line))
	assert.Equal(t, id, line["requestId"])
	assert.Equal(t, "/ping", line["path"])
	assert.Equal(t, float64(200), line["status"])

	known := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, known)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, known, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}
