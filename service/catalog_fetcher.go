package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"beancatalog/models"
)

// Upstream request constants. The catalog is small enough to fetch in one page.
const (
	catalogPath      = "/api/Beans"
	catalogPageIndex = 1
	catalogPageSize  = 200
	// revalidateSeconds is the freshness window announced to intermediaries.
	revalidateSeconds = 3600
	// maxCatalogBytes bounds the response body read from upstream.
	maxCatalogBytes = 16 << 20
)

// ErrDataUnavailable is the only error the catalog fetch reports to callers.
// The underlying cause is logged, never returned.
var ErrDataUnavailable = errors.New("Unable to load bean data. Please try again later.") //nolint:staticcheck // user-facing message

// CatalogFetcher issues the outbound catalog request
type CatalogFetcher struct {
	client  *http.Client
	baseURL string
	log     zerolog.Logger
}

// Ensure CatalogFetcher implements CatalogSource
var _ CatalogSource = (*CatalogFetcher)(nil)

// NewCatalogFetcher creates a new CatalogFetcher.
// A nil client gets a default client with the given timeout.
func NewCatalogFetcher(client *http.Client, baseURL string, timeout time.Duration, log zerolog.Logger) *CatalogFetcher {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &CatalogFetcher{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log.With().Str("component", "catalog_fetcher").Logger(),
	}
}

// CatalogURL returns the fixed upstream URL
func (f *CatalogFetcher) CatalogURL() string {
	return fmt.Sprintf("%s%s?pageIndex=%d&pageSize=%d", f.baseURL, catalogPath, catalogPageIndex, catalogPageSize)
}

// FetchCatalog retrieves the whole catalog in one request.
// Any failure (transport, status, body) is reported as ErrDataUnavailable.
func (f *CatalogFetcher) FetchCatalog(ctx context.Context) (*models.CatalogPage, error) {
	page, err := f.fetch(ctx)
	if err != nil {
		f.log.Error().Err(err).Str("url", f.CatalogURL()).Msg("❌ Failed to fetch beans")
		return nil, ErrDataUnavailable
	}

	f.log.Info().
		Int("items", len(page.Items)).
		Int("totalCount", page.TotalCount).
		Msg("✓ Catalog fetched")
	return page, nil
}

func (f *CatalogFetcher) fetch(ctx context.Context) (*models.CatalogPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.CatalogURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", fmt.Sprintf("max-age=%d", revalidateSeconds))

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	return decodeCatalog(io.LimitReader(resp.Body, maxCatalogBytes))
}

// decodeCatalog decodes exactly one catalog object. A missing or null items
// list and trailing data are errors.
func decodeCatalog(r io.Reader) (*models.CatalogPage, error) {
	var body struct {
		models.CatalogPage
		Items *[]models.Bean `json:"items"`
	}

	dec := json.NewDecoder(r)
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if body.Items == nil {
		return nil, errors.New("catalog has no items list")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after catalog")
	}

	page := body.CatalogPage
	page.Items = *body.Items
	return &page, nil
}
