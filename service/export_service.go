package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"beancatalog/models"
	"beancatalog/utils"
)

const exportTimeout = 30 * time.Second

// chromeCandidates are checked when no Chrome path is configured
var chromeCandidates = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/snap/bin/chromium",
}

// ExportService prints the rendered catalog page to PDF with headless Chrome
type ExportService struct {
	publicBaseURL string
	chromePath    string
	log           zerolog.Logger
}

// NewExportService creates a new ExportService.
// publicBaseURL is the address Chrome uses to reach this server.
func NewExportService(publicBaseURL, chromePath string, log zerolog.Logger) *ExportService {
	return &ExportService{
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		chromePath:    chromePath,
		log:           log.With().Str("component", "export_service").Logger(),
	}
}

// detectChromePath returns the configured Chrome path if it exists, otherwise
// the first well-known installation path found, or "" to let chromedp look it up
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}
	for _, path := range chromeCandidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// RenderURL returns the page URL Chrome navigates to for state
func (s *ExportService) RenderURL(state models.ViewState) string {
	return s.publicBaseURL + utils.PageHref(state.FilterBy, state.SortBy, max(1, state.Page))
}

// ExportFilename returns the attachment name of an exported page
func ExportFilename(page int) string {
	return fmt.Sprintf("beans_page_%d.pdf", max(1, page))
}

// GeneratePDF renders the catalog page for state and prints it to PDF
func (s *ExportService) GeneratePDF(ctx context.Context, state models.ViewState) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	} else {
		s.log.Warn().Msg("⚠️  No Chrome installation found, letting chromedp auto-detect")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := s.RenderURL(state)
	s.log.Info().Str("url", renderURL).Msg("Generating PDF")

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(1024, 1400),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 portrait, inches
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	s.log.Info().Int("bytes", len(pdfBuf)).Msg("✓ PDF generated")
	return pdfBuf, nil
}
